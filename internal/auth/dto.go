package auth

import (
	"github.com/google/uuid"

	"github.com/vbmartins/cargalog-backend/pkg/enums"
)

// LoginRequest carries the credentials posted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserSummary is the authenticated account as returned to the client.
type UserSummary struct {
	ID       uuid.UUID      `json:"id"`
	Name     string         `json:"name"`
	Username string         `json:"username"`
	Role     enums.UserRole `json:"role"`
}

// LoginResponse bundles the access token with the account summary.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        UserSummary `json:"user"`
}
