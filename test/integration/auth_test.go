package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAuthFlow covers login, profile access and logout end to end.
func TestAuthFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.createUser(t, "john", true)

	// Without a token the profile is off limits.
	resp := app.doJSON(t, "GET", "/me", "", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	access, _ := app.login(t, "john")

	resp = app.doJSON(t, "GET", "/me", access, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	decodeJSON(t, resp, &profile)
	assert.Equal(t, "john", profile.Username)
	assert.Equal(t, "john@example.com", profile.Email)

	// Logout revokes the presented token.
	resp = app.doJSON(t, "POST", "/revoke", access, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.doJSON(t, "GET", "/me", access, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "a revoked token must stop working immediately")
}

func TestLoginFailures(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.createUser(t, "john", true)

	resp := app.doJSON(t, "POST", "/token", "", map[string]string{
		"email":    "john@example.com",
		"password": "wrong",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = app.doJSON(t, "POST", "/token", "", map[string]string{
		"email":    "nobody@example.com",
		"password": testPassword,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// TestActivationFlow seeds an inactive account and walks it through the
// activation link to a working login.
func TestActivationFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	userID := app.createUser(t, "jane", false)

	resp := app.doJSON(t, "POST", "/token", "", map[string]string{
		"email":    "jane@example.com",
		"password": testPassword,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusForbidden, resp.StatusCode, "inactive accounts cannot log in")

	token, err := app.AuthSvc.ActivationToken(userID)
	require.NoError(t, err)

	resp = app.doJSON(t, "GET", "/users/activate/"+token, "", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	app.login(t, "jane")
}

func TestRefreshFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.createUser(t, "john", true)
	_, refresh := app.login(t, "john")

	resp := app.doJSON(t, "POST", "/refresh", "", map[string]string{
		"refresh_token": refresh,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &refreshed)
	require.NotEmpty(t, refreshed.AccessToken)

	resp = app.doJSON(t, "GET", "/me", refreshed.AccessToken, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A refresh token is not an access token.
	resp = app.doJSON(t, "GET", "/me", refresh, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegistration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	payload := map[string]string{
		"username": "newcook",
		"email":    "newcook@example.com",
		"password": "supersecret",
	}

	resp := app.doJSON(t, "POST", "/users", "", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeJSON(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "newcook", created.Username)

	// The account starts inactive.
	resp = app.doJSON(t, "POST", "/token", "", map[string]string{
		"email":    "newcook@example.com",
		"password": "supersecret",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Reusing the username conflicts.
	resp = app.doJSON(t, "POST", "/users", "", payload)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Reusing the email conflicts too.
	resp = app.doJSON(t, "POST", "/users", "", map[string]string{
		"username": "othercook",
		"email":    "newcook@example.com",
		"password": "supersecret",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = app.doJSON(t, "POST", "/users", "", map[string]string{
		"username": "badcook",
		"email":    "not-an-email",
		"password": "x",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
