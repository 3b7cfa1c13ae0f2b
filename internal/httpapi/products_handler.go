package httpapi

import (
	"errors"
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/AdamBrutsaert/trinity-sub000/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductsHandler struct {
	products *service.ProductService
}

func NewProductsHandler(products *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

type productRequestDTO struct {
	Barcode     string   `json:"barcode"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	BrandID     string   `json:"brand_id"`
	CategoryID  string   `json:"category_id"`
	Price       string   `json:"price"`
	EnergyKcal  *int     `json:"energy_kcal"`
	Fat         *float64 `json:"fat"`
	Carbs       *float64 `json:"carbs"`
	Protein     *float64 `json:"protein"`
	Salt        *float64 `json:"salt"`
}

func (req *productRequestDTO) toDomain(w http.ResponseWriter) (*domain.Product, bool) {
	if req.Barcode == "" || req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "barcode and name are required")
		return nil, false
	}

	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_brand_id", "brand_id must be a valid UUID")
		return nil, false
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_category_id", "category_id must be a valid UUID")
		return nil, false
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must be a non-negative decimal string")
		return nil, false
	}

	return &domain.Product{
		Barcode:     req.Barcode,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BrandID:     brandID,
		CategoryID:  categoryID,
		Price:       price.Round(2),
		EnergyKcal:  req.EnergyKcal,
		Fat:         req.Fat,
		Carbs:       req.Carbs,
		Protein:     req.Protein,
		Salt:        req.Salt,
	}, true
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	product, ok := req.toDomain(w)
	if !ok {
		return
	}

	if err := h.products.Create(r.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductRefMissing) {
			respondError(w, http.StatusUnprocessableEntity, "unknown_reference", "referenced brand or category does not exist")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}
	if products == nil {
		products = []*domain.Product{}
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "product_id"), "product_id")
	if !ok {
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")
	if barcode == "" {
		respondError(w, http.StatusBadRequest, "invalid_barcode", "barcode is required")
		return
	}

	product, err := h.products.GetByBarcode(r.Context(), barcode)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "product_id"), "product_id")
	if !ok {
		return
	}

	var req productRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	product, ok := req.toDomain(w)
	if !ok {
		return
	}
	product.ID = id

	if err := h.products.Update(r.Context(), product); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			respondError(w, http.StatusNotFound, "not_found", "product not found")
		case errors.Is(err, repository.ErrProductRefMissing):
			respondError(w, http.StatusUnprocessableEntity, "unknown_reference", "referenced brand or category does not exist")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to update product")
		}
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "product_id"), "product_id")
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
