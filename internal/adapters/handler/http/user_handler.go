package http

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

const maxImageSize = 10 << 20 // 10 MiB

type UserHandler struct {
	users   ports.UserService
	recipes ports.RecipeService
	auth    ports.AuthService
	logger  *zap.Logger
}

func NewUserHandler(users ports.UserService, recipes ports.RecipeService, auth ports.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:   users,
		recipes: recipes,
		auth:    auth,
		logger:  logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	AvatarImageURL string `json:"avatar_image_url,omitempty"`
}

// Register godoc
// @Summary      Registers a new account
// @Tags         users
// @Accept       json
// @Success      201
// @Failure      400
// @Failure      409
// @Router       /users [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Register(r.Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	// Mail delivery is a collaborator concern; the activation link is
	// handed to it out of band. Logged here so local setups can activate.
	if token, err := h.auth.ActivationToken(user.ID); err != nil {
		h.logger.Error("failed to issue activation token", zap.Error(err))
	} else {
		h.logger.Info("activation token issued",
			zap.String("username", user.Username),
			zap.String("token", token),
		)
	}

	respondJSON(w, http.StatusCreated, profileResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
}

// Activate godoc
// @Summary      Activates an account from an activation link
// @Tags         users
// @Success      204
// @Failure      401
// @Router       /users/activate/{token} [get]
func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	userID, err := h.auth.ParseActivationToken(chi.URLParam(r, "token"))
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.users.Activate(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetUser returns a public profile. The email is included only when the
// caller is looking at their own profile.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondError(w, err)
		return
	}

	resp := profileResponse{
		ID:             user.ID.String(),
		Username:       user.Username,
		AvatarImageURL: user.AvatarImageURL,
	}
	if caller := callerID(r); caller != nil && *caller == user.ID {
		resp.Email = user.Email
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), *callerID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profileResponse{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		AvatarImageURL: user.AvatarImageURL,
	})
}

// UserRecipes godoc
// @Summary      Lists a user's recipes
// @Tags         recipes
// @Success      200
// @Failure      404
// @Router       /users/{username}/recipes [get]
func (h *UserHandler) UserRecipes(w http.ResponseWriter, r *http.Request) {
	input := ports.ListUserRecipesInput{
		ListRecipesInput: listInput(r),
		Visibility:       r.URL.Query().Get("visibility"),
	}

	page, err := h.recipes.ListByUser(r.Context(), callerID(r), chi.URLParam(r, "username"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	file, ext, err := imageUpload(r, "avatar")
	if err != nil {
		respondError(w, err)
		return
	}
	defer file.Close()

	user, err := h.users.SetAvatar(r.Context(), *callerID(r), file, ext)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, profileResponse{
		ID:             user.ID.String(),
		Username:       user.Username,
		Email:          user.Email,
		AvatarImageURL: user.AvatarImageURL,
	})
}

// imageUpload extracts a multipart image field and validates its extension.
func imageUpload(r *http.Request, field string) (multipartFile, string, error) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		v := domain.NewValidationError()
		v.Add(field, "a multipart image upload is required")
		return nil, "", v
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		v := domain.NewValidationError()
		v.Add(field, "an image file is required")
		return nil, "", v
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		file.Close()
		v := domain.NewValidationError()
		v.Add(field, "only jpg, jpeg and png images are supported")
		return nil, "", v
	}
	return file, ext, nil
}

type multipartFile interface {
	Read(p []byte) (int, error)
	Close() error
}
