package middleware

import (
	"context"
	"net/http"

	"itemtrack/internal/app/service"
	"itemtrack/internal/common"
	"itemtrack/internal/common/security"
	"itemtrack/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const SubjectCtxKey contextKey = "subject"

// Authenticator gates protected routes. jwtauth.Verifier has already parsed
// the Authorization header; here the token is checked, the subject id claim
// extracted, and the account resolved through the cache-backed resolver. A
// missing or invalid token, or a token whose account no longer exists, ends
// the request with 401.
func Authenticator(resolver *service.SubjectResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header
			if err != nil || token == nil {
				common.RespondUnauthorized(w)
				return
			}

			subjectID, err := security.SubjectIDFromClaims(claims)
			if err != nil {
				common.RespondUnauthorized(w)
				return
			}

			sub, err := resolver.Resolve(r.Context(), subjectID)
			if err != nil {
				common.RespondUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectCtxKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the authenticated subject placed by
// Authenticator.
func SubjectFromContext(ctx context.Context) (model.Subject, bool) {
	sub, ok := ctx.Value(SubjectCtxKey).(model.Subject)
	return sub, ok
}
