package middleware

import (
	"net/http"

	"littlelemon/internal/auth"
	"littlelemon/internal/logger"
	"littlelemon/internal/utils"

	"go.uber.org/zap"
)

// AuthMiddleware authenticates the request when a token is present.
// Requests without a token pass through anonymously; a token that fails
// validation is rejected with 401.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := auth.ExtractAccessToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ParseJWT(tokenStr)
		if err != nil {
			logger.FromCtx(r.Context()).Info("rejected access token", zap.Error(err))
			utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
