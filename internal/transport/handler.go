package transport

import (
	"net/http"

	"pawmarket/internal/domain"
	"pawmarket/internal/middleware"

	"github.com/google/uuid"
)

// callerID extracts and parses the authenticated user's ID from the
// request context populated by the auth middleware.
func callerID(r *http.Request) (uuid.UUID, error) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil, domain.Unauthorized("unauthorized")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, domain.Unauthorized("invalid user ID")
	}
	return userID, nil
}

// pathUUID parses a UUID URL parameter
func pathUUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.Validation("invalid ID in URL")
	}
	return id, nil
}
