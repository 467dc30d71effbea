package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/vbmartins/cargalog-backend/internal/loads"
	"github.com/vbmartins/cargalog-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "actor_role"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole injects the actor role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}

// ActorFromContext assembles the caller identity set by the Auth middleware.
func ActorFromContext(ctx context.Context) loads.Actor {
	actor := loads.Actor{}
	if id, err := uuid.Parse(UserIDFromContext(ctx)); err == nil {
		actor.UserID = id
	}
	if role, err := enums.ParseUserRole(RoleFromContext(ctx)); err == nil {
		actor.Role = role
	}
	return actor
}
