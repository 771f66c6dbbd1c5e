package chi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/softhub/internal/auth"
	"github.com/kailas-cloud/softhub/internal/domain"
	logpkg "github.com/kailas-cloud/softhub/internal/logger"
)

// exemptPaths are admin routes that bypass authentication.
var exemptPaths = map[string]struct{}{
	"/api/v1/admin/login": {},
}

// TokenVerifier validates admin session tokens.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

type claimsKey struct{}

// ClaimsFromContext returns the admin claims placed by BearerAuthMiddleware.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok && c != nil
}

// BearerAuthMiddleware returns a middleware that validates admin Bearer tokens
// and stores the verified claims in the request context.
func BearerAuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(header, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			token := strings.TrimSpace(header[len(bearerPrefix):])
			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logpkg.FromContext(r.Context()).Error("token verification failed", zap.Error(err))
					writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
					return
				}
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			ctx = logpkg.WithFields(ctx, zap.String("admin_id", claims.AdminID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
