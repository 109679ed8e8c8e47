package middleware

import (
	"net/http"

	"userdata/pkg/auth"

	"go.uber.org/zap"
)

// Header names carrying the caller identity, set by the upstream gateway.
const (
	HeaderUserID    = "x-user-id"
	HeaderUserEmail = "x-user-email"
)

// Identity resolves the caller identity from request headers and stores it on
// the request context. The values are trusted verbatim; there is no token or
// signature verification here, that boundary belongs to the gateway. Missing
// headers resolve to the anonymous/unknown sentinels. Email is logged only,
// never persisted.
func Identity(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := auth.FromHeaders(
				r.Header.Get(HeaderUserID),
				r.Header.Get(HeaderUserEmail),
			)

			logger.Info("Request from user",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("userId", user.UserID),
				zap.String("email", user.Email),
			)

			ctx := auth.SetUserInContext(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
