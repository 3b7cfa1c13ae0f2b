package httpapi

import (
	"errors"
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/auth"
	"github.com/AdamBrutsaert/trinity-sub000/internal/repository"
)

type AuthHandler struct {
	repo *repository.Repository
	auth *auth.Service
}

func NewAuthHandler(repo *repository.Repository, authService *auth.Service) *AuthHandler {
	return &AuthHandler{repo: repo, auth: authService}
}

type loginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponseDTO struct {
	Token string `json:"token"`
}

// Login answers 401 with the same message for an unknown email and a bad
// password, so the response never reveals which one was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequestDTO
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, err := h.repo.GetUserByEmail(r.Context(), h.repo.DB(), req.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to authenticate")
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := h.auth.IssueToken(user.ID, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}

	respondJSON(w, http.StatusOK, loginResponseDTO{Token: token})
}
