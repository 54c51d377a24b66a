package api

import (
	"context"

	"github.com/fundspark/fundspark-backend/models"
)

type keyType string

const (
	userKey keyType = "user"
)

// ctxWithUser attaches the authenticated user to the request context.
func ctxWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// userFromCtx retrieves the authenticated user, if any. Handlers behind the
// optional-auth middleware must treat the second return as the
// authenticated-vs-anonymous distinction rather than an error.
func userFromCtx(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}
