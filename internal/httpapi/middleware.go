package httpapi

import (
	"net/http"

	"github.com/AdamBrutsaert/trinity-sub000/internal/auth"
	"github.com/google/uuid"
)

// identity pulls the verified caller from the request context. Routes
// behind the auth middleware always have one; a missing identity means
// the route was wired without it.
func identity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	id := auth.IdentityFromContext(r.Context())
	if id == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return nil, false
	}
	return id, true
}

func parseUUIDParam(w http.ResponseWriter, raw, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_"+name, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
