package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/libraria-tech/go-backend/pkg/e"
	"github.com/libraria-tech/go-backend/pkg/logger"
	"github.com/libraria-tech/go-backend/pkg/tokens"
)

type ctxKey string

// userIDKey — ключ контекста с идентификатором аутентифицированного пользователя.
const userIDKey ctxKey = "user_id"

// AuthMiddleware проверяет Bearer-токен и кладёт идентификатор
// пользователя в контекст запроса.
func AuthMiddleware(tm *tokens.Manager, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				log.Warnf("%d %s: missing bearer token", http.StatusUnauthorized, e.ErrUnauthorized.Error())
				WriteError(w, e.ErrUnauthorized)
				return
			}

			userID, err := tm.Parse(raw)
			if err != nil {
				log.Warnf("%d %s: %s", http.StatusUnauthorized, e.ErrUnauthorized.Error(), err.Error())
				WriteError(w, e.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromCtx достаёт идентификатор пользователя, положенный AuthMiddleware.
func UserIDFromCtx(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(userIDKey).(int64)
	if !ok {
		return 0, e.ErrUnauthorized
	}

	return userID, nil
}
