package auth

import (
	"context"

	"userdata/pkg/errors"
)

const (
	// AnonymousUserID is the sentinel identity assigned when no x-user-id
	// header is present on the request.
	AnonymousUserID = "anonymous"

	// UnknownEmail is the sentinel recorded when no x-user-email header is
	// present. Email is used for logging only and is never persisted.
	UnknownEmail = "unknown"
)

// UserContext holds the identity resolved from request metadata. The values
// are trusted verbatim; verification is the gateway's responsibility.
type UserContext struct {
	UserID string
	Email  string
}

// IsAnonymous reports whether the request carried no identity header.
func (u UserContext) IsAnonymous() bool {
	return u.UserID == AnonymousUserID
}

// FromHeaders builds a UserContext from raw header values, substituting the
// sentinel defaults for missing fields.
func FromHeaders(userID, email string) UserContext {
	if userID == "" {
		userID = AnonymousUserID
	}
	if email == "" {
		email = UnknownEmail
	}
	return UserContext{UserID: userID, Email: email}
}

type contextKey struct{}

var userContextKey = contextKey{}

// SetUserInContext stores the resolved identity on the request context.
func SetUserInContext(ctx context.Context, user UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the resolved identity from the request context.
func GetUserFromContext(ctx context.Context) (UserContext, error) {
	user, ok := ctx.Value(userContextKey).(UserContext)
	if !ok {
		return UserContext{}, errors.NewUnauthorizedError("no user context")
	}
	return user, nil
}
