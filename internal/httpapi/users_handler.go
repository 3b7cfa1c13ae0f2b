package httpapi

import (
	"errors"
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/auth"
	"github.com/AdamBrutsaert/trinity-sub000/internal/domain"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

type UsersHandler struct {
	repo *repository.Repository
}

func NewUsersHandler(repo *repository.Repository) *UsersHandler {
	return &UsersHandler{repo: repo}
}

type createUserRequestDTO struct {
	Email       string      `json:"email"`
	Password    string      `json:"password"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	PhoneNumber *string     `json:"phone_number"`
	Address     *string     `json:"address"`
	ZipCode     *string     `json:"zip_code"`
	City        *string     `json:"city"`
	Country     *string     `json:"country"`
	Role        domain.Role `json:"role"`
}

type updateUserRequestDTO struct {
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	PhoneNumber *string     `json:"phone_number"`
	Address     *string     `json:"address"`
	ZipCode     *string     `json:"zip_code"`
	City        *string     `json:"city"`
	Country     *string     `json:"country"`
	Role        domain.Role `json:"role"`
	IsActive    *bool       `json:"is_active"`
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email, password, first_name and last_name are required")
		return
	}
	if req.Role == "" {
		req.Role = domain.RoleCustomer
	}
	if !req.Role.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_role", "role must be customer or admin")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create user")
		return
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		ZipCode:      req.ZipCode,
		City:         req.City,
		Country:      req.Country,
		Role:         req.Role,
	}
	if err := h.repo.CreateUser(r.Context(), h.repo.DB(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "email_taken", "email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create user")
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.ListUsers(r.Context(), h.repo.DB())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list users")
		return
	}
	if users == nil {
		users = []*domain.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "user_id"), "user_id")
	if !ok {
		return
	}

	user, err := h.repo.GetUserByID(r.Context(), h.repo.DB(), id)
	if errors.Is(err, repository.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch user")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "user_id"), "user_id")
	if !ok {
		return
	}

	var req updateUserRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email, first_name and last_name are required")
		return
	}
	if !req.Role.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_role", "role must be customer or admin")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &domain.User{
		ID:          id,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		ZipCode:     req.ZipCode,
		City:        req.City,
		Country:     req.Country,
		Role:        req.Role,
		IsActive:    isActive,
	}
	if err := h.repo.UpdateUser(r.Context(), h.repo.DB(), user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "not_found", "user not found")
		case errors.Is(err, repository.ErrEmailTaken):
			respondError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to update user")
		}
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, chi.URLParam(r, "user_id"), "user_id")
	if !ok {
		return
	}

	if err := h.repo.DeleteUser(r.Context(), h.repo.DB(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated caller's own profile.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	user, err := h.repo.GetUserByID(r.Context(), h.repo.DB(), id.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch profile")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type updateProfileRequestDTO struct {
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	ZipCode     *string `json:"zip_code"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
}

// UpdateMe lets a customer edit their own profile. Role and active flag
// stay whatever they already were.
func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req updateProfileRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email, first_name and last_name are required")
		return
	}

	current, err := h.repo.GetUserByID(r.Context(), h.repo.DB(), id.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch profile")
		return
	}

	user := &domain.User{
		ID:          id.UserID,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		ZipCode:     req.ZipCode,
		City:        req.City,
		Country:     req.Country,
		Role:        current.Role,
		IsActive:    current.IsActive,
	}
	if err := h.repo.UpdateUser(r.Context(), h.repo.DB(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "email_taken", "email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update profile")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
