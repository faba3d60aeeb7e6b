package auth

import (
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/verikit/internal/pkg/message"
	"github.com/ferdiebergado/verikit/internal/pkg/security"
	"github.com/ferdiebergado/verikit/internal/pkg/web"
	"github.com/ferdiebergado/verikit/internal/platform/jwt"
)

// RequireToken rejects requests without a valid bearer access token and puts
// the authenticated user's ID on the request context.
func RequireToken(signer jwt.Signer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Info("Verifying access token...")

			token, err := security.ExtractBearerToken(r)
			if err != nil || token == "" {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			claims, err := signer.Verify(token)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			ctx := ContextWithUser(r.Context(), claims.UserID)
			r = r.WithContext(ctx)
			next.ServeHTTP(w, r)
		})
	}
}
