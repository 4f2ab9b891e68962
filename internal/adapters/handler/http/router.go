package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/clintonMF/smilecook/internal/core/ports"
)

type RouterConfig struct {
	Auth     ports.AuthService
	Limiter  ports.RateLimiter
	ImageDir string
	Logger   *zap.Logger
}

func NewHandler(recipeHandler *RecipeHandler, userHandler *UserHandler, tokenHandler *TokenHandler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(cfg.Logger))
	r.Use(Authenticate(cfg.Auth))

	r.Post("/token", tokenHandler.Login)
	r.Post("/refresh", tokenHandler.Refresh)
	r.With(RequireAuth).Post("/revoke", tokenHandler.Revoke)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Register)
		r.Get("/activate/{token}", userHandler.Activate)
		r.With(RequireAuth).Put("/avatar", userHandler.UploadAvatar)
		r.Get("/{username}", userHandler.GetUser)
		r.With(RateLimit(cfg.Limiter, "user_recipes")).
			Get("/{username}/recipes", userHandler.UserRecipes)
	})

	r.With(RequireAuth).Get("/me", userHandler.Me)

	r.Route("/recipes", func(r chi.Router) {
		r.With(RateLimit(cfg.Limiter, "recipes")).Get("/", recipeHandler.List)
		r.With(RequireAuth).Post("/", recipeHandler.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.With(RateLimit(cfg.Limiter, "recipe")).Get("/", recipeHandler.Get)
			r.With(RequireAuth).Patch("/", recipeHandler.Update)
			r.With(RequireAuth).Delete("/", recipeHandler.Delete)
			r.With(RequireAuth).Put("/publish", recipeHandler.Publish)
			r.With(RequireAuth).Delete("/publish", recipeHandler.Unpublish)
			r.With(RequireAuth).Put("/cover", recipeHandler.UploadCover)
		})
	})

	if cfg.ImageDir != "" {
		fs := http.FileServer(http.Dir(cfg.ImageDir))
		r.Handle("/static/images/*", http.StripPrefix("/static/images/", fs))
	}

	return r
}
