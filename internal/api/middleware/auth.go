package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/svojko1/nechty-sub001/internal/api/handlers"
)

type ctxKey string

// UserIDKey ключ контекста с ID администратора из заголовка
const UserIDKey ctxKey = "userID"

const msgUnauthorized = "требуется заголовок X-User-ID"

// Auth проверяет наличие корректного заголовка X-User-ID
// Защищенные маршруты доступны только администраторам стойки
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext возвращает ID администратора, установленный Auth
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
