package httpapi

import (
	"errors"
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves brands and categories; the two are structurally
// identical name registries.
type CatalogHandler struct {
	repo *repository.Repository
}

func NewCatalogHandler(repo *repository.Repository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

type nameRequestDTO struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req nameRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	brand, err := h.repo.CreateBrand(r.Context(), h.repo.DB(), req.Name)
	if errors.Is(err, repository.ErrBrandTaken) {
		respondError(w, http.StatusConflict, "name_taken", "brand name already exists")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create brand")
		return
	}
	respondJSON(w, http.StatusCreated, brand)
}

func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.repo.ListBrands(r.Context(), h.repo.DB())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list brands")
		return
	}
	if brands == nil {
		brands = []*domain.Brand{}
	}
	respondJSON(w, http.StatusOK, brands)
}

func (h *CatalogHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "brand_id"), "brand_id")
	if !ok {
		return
	}

	brand, err := h.repo.GetBrandByID(r.Context(), h.repo.DB(), id)
	if errors.Is(err, repository.ErrBrandNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "brand not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch brand")
		return
	}
	respondJSON(w, http.StatusOK, brand)
}

func (h *CatalogHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "brand_id"), "brand_id")
	if !ok {
		return
	}

	var req nameRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	brand, err := h.repo.UpdateBrand(r.Context(), h.repo.DB(), id, req.Name)
	switch {
	case errors.Is(err, repository.ErrBrandNotFound):
		respondError(w, http.StatusNotFound, "not_found", "brand not found")
	case errors.Is(err, repository.ErrBrandTaken):
		respondError(w, http.StatusConflict, "name_taken", "brand name already exists")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update brand")
	default:
		respondJSON(w, http.StatusOK, brand)
	}
}

func (h *CatalogHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "brand_id"), "brand_id")
	if !ok {
		return
	}

	if err := h.repo.DeleteBrand(r.Context(), h.repo.DB(), id); err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "brand not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete brand")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req nameRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	category, err := h.repo.CreateCategory(r.Context(), h.repo.DB(), req.Name)
	if errors.Is(err, repository.ErrCategoryTaken) {
		respondError(w, http.StatusConflict, "name_taken", "category name already exists")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create category")
		return
	}
	respondJSON(w, http.StatusCreated, category)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context(), h.repo.DB())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list categories")
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "category_id"), "category_id")
	if !ok {
		return
	}

	category, err := h.repo.GetCategoryByID(r.Context(), h.repo.DB(), id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "category not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch category")
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "category_id"), "category_id")
	if !ok {
		return
	}

	var req nameRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	category, err := h.repo.UpdateCategory(r.Context(), h.repo.DB(), id, req.Name)
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		respondError(w, http.StatusNotFound, "not_found", "category not found")
	case errors.Is(err, repository.ErrCategoryTaken):
		respondError(w, http.StatusConflict, "name_taken", "category name already exists")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update category")
	default:
		respondJSON(w, http.StatusOK, category)
	}
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "category_id"), "category_id")
	if !ok {
		return
	}

	if err := h.repo.DeleteCategory(r.Context(), h.repo.DB(), id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "category not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
