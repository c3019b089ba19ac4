package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/igestaos-eng/barbearia-inicio/internal/api/handlers"
)

type userIDContextKey struct{}

// HeaderUserID заголовок аутентификации
// Сервис живёт за gateway: заголовок проставляется там после проверки токена
const HeaderUserID = "X-User-ID"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth требует валидный X-User-ID и кладёт его в контекст запроса
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderUserID)
			if raw == "" {
				logger.Warn("auth: missing %s header for %s %s", HeaderUserID, r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, "отсутствует заголовок X-User-ID")
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("auth: invalid %s header %q for %s %s", HeaderUserID, raw, r.Method, r.URL.Path)
				handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-User-ID")
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext извлекает ID пользователя, положенный Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey{}).(int64)
	return userID, ok
}
