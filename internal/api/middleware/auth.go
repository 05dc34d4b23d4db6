package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/trillium/massage-availability/internal/api/handlers"
)

const msgUnauthorized = "missing or invalid admin token"

// AdminFromContext true, если запрос предъявил верный admin token
func AdminFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(ctxKeyAdmin).(bool)
	return v
}

// AdminAuth пропускает запросы с заголовком "Authorization: Bearer <token>"
// Пустой token закрывает доступ полностью
func AdminAuth(token string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validBearer(r, token) {
				logger.Warn("%s %s - Unauthorized admin request", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyAdmin, true)))
		})
	}
}

// DetectAdmin помечает запросы с верным admin token, не отклоняя остальные
// Публичные маршруты проверяют отметку через AdminFromContext
func DetectAdmin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validBearer(r, token) {
				r = r.WithContext(context.WithValue(r.Context(), ctxKeyAdmin, true))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validBearer(r *http.Request, token string) bool {
	got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return ok && token != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}
