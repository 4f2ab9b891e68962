package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/clintonMF/smilecook/internal/adapters/cache"
	"github.com/clintonMF/smilecook/internal/adapters/denylist"
	handler "github.com/clintonMF/smilecook/internal/adapters/handler/http"
	"github.com/clintonMF/smilecook/internal/adapters/password"
	"github.com/clintonMF/smilecook/internal/adapters/ratelimit"
	repo "github.com/clintonMF/smilecook/internal/adapters/repository/postgres"
	"github.com/clintonMF/smilecook/internal/adapters/storage"
	"github.com/clintonMF/smilecook/internal/core/services"
)

const testPassword = "secret-pass"

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	pass := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(pass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	AuthSvc     *services.AuthService
	DBContainer testcontainers.Container
}

func setupTestApp(t *testing.T) *TestApp {
	return setupTestAppWithRateLimit(t, 1000)
}

func setupTestAppWithRateLimit(t *testing.T, perMinute int) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	userRepo := repo.NewUserRepository(db)
	recipeRepo := repo.NewRecipeRepository(db)

	resultCache, err := cache.New(1000, time.Minute)
	require.NoError(t, err)
	t.Cleanup(resultCache.Close)

	hasher := password.NewBcryptHasherWithCost(4)
	revoked := denylist.NewMemory()
	images := storage.NewDiskImageStore(t.TempDir(), "/static/images")

	authSvc := services.NewAuthService(userRepo, hasher, revoked, []byte("test-secret"), 15*time.Minute, 24*time.Hour)
	userSvc := services.NewUserService(userRepo, hasher, images)
	recipeSvc := services.NewRecipeService(recipeRepo, userRepo, resultCache, images, 100)

	router := handler.NewHandler(
		handler.NewRecipeHandler(recipeSvc),
		handler.NewUserHandler(userSvc, recipeSvc, authSvc, zap.NewNop()),
		handler.NewTokenHandler(authSvc),
		handler.RouterConfig{
			Auth:    authSvc,
			Limiter: ratelimit.New(perMinute),
			Logger:  zap.NewNop(),
		},
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		AuthSvc:     authSvc,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// createUser seeds an account directly, bypassing the registration and
// activation flow so tests can focus on the surface they exercise.
func (app *TestApp) createUser(t *testing.T, username string, active bool) uuid.UUID {
	t.Helper()

	digest, err := password.NewBcryptHasherWithCost(4).Hash(testPassword)
	require.NoError(t, err)

	userID := uuid.New()
	_, err = app.DB.Exec(
		"INSERT INTO users (id, username, email, password_digest, is_active) VALUES ($1, $2, $3, $4, $5)",
		userID, username, username+"@example.com", digest, active,
	)
	require.NoError(t, err)
	return userID
}

// login exchanges the seeded credentials through the API and returns the
// issued token pair.
func (app *TestApp) login(t *testing.T, username string) (access, refresh string) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    username + "@example.com",
		"password": testPassword,
	})

	resp, err := app.Client.Post(app.Server.URL+"/token", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pair struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pair))
	require.NotEmpty(t, pair.AccessToken)
	return pair.AccessToken, pair.RefreshToken
}

// doJSON issues a request with an optional bearer token and JSON payload.
func (app *TestApp) doJSON(t *testing.T, method, path, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
