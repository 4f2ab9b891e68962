package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clintonMF/smilecook/internal/core/domain"
	"github.com/clintonMF/smilecook/internal/core/ports"
)

type RecipeHandler struct {
	service ports.RecipeService
}

func NewRecipeHandler(service ports.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

type createRecipeRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Ingredients   string `json:"ingredients"`
	Directions    string `json:"directions"`
	NumOfServings int    `json:"num_of_servings"`
	CookTime      int    `json:"cook_time"`
}

// updateRecipeRequest uses pointers so an absent field keeps the stored
// value while an explicitly submitted empty one clears it.
type updateRecipeRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Ingredients   *string `json:"ingredients"`
	Directions    *string `json:"directions"`
	NumOfServings *int    `json:"num_of_servings"`
	CookTime      *int    `json:"cook_time"`
}

// List godoc
// @Summary      Lists published recipes
// @Tags         recipes
// @Success      200
// @Router       /recipes [get]
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListPublished(r.Context(), listInput(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	recipe, err := h.service.Create(r.Context(), *callerID(r), ports.CreateRecipeInput{
		Name:          req.Name,
		Description:   req.Description,
		Ingredients:   req.Ingredients,
		Directions:    req.Directions,
		NumOfServings: req.NumOfServings,
		CookTime:      req.CookTime,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, recipe)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	recipe, err := h.service.Get(r.Context(), callerID(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	var req updateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	recipe, err := h.service.Update(r.Context(), *callerID(r), id, ports.UpdateRecipeInput{
		Name:          req.Name,
		Description:   req.Description,
		Ingredients:   req.Ingredients,
		Directions:    req.Directions,
		NumOfServings: req.NumOfServings,
		CookTime:      req.CookTime,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), *callerID(r), id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipeHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

func (h *RecipeHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *RecipeHandler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := h.service.SetPublished(r.Context(), *callerID(r), id, published); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RecipeHandler) UploadCover(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	file, ext, err := imageUpload(r, "cover")
	if err != nil {
		respondError(w, err)
		return
	}
	defer file.Close()

	recipe, err := h.service.SetCoverImage(r.Context(), *callerID(r), id, file, ext)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recipe)
}

func recipeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, domain.ErrRecipeNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// listInput reads the listing query parameters; values the domain layer
// does not recognize are coerced to defaults there, not rejected here.
func listInput(r *http.Request) ports.ListRecipesInput {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))
	return ports.ListRecipesInput{
		Q:       query.Get("q"),
		Page:    page,
		PerPage: perPage,
		Sort:    query.Get("sort"),
		Order:   query.Get("order"),
	}
}
