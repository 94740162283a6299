package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

// MessageTooManyRequests текст отказа для пользователя
const MessageTooManyRequests = "Too many changes at once. Please wait a moment and try again."

// RateLimit ограничивает изменяющие запросы (POST и т.п.), каждый из которых
// ведет к вызову удаленной таблицы. GET страницы, снимок и health не ограничиваются.
// rps - запросов в секунду, burst - допустимый всплеск.
func RateLimit(logger *slog.Logger, next http.Handler, rps int, burst int) http.Handler {
	if rps <= 0 {
		rps = 100
	}
	if burst <= 0 {
		burst = 10
	}

	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isReadOnly(r.Method) || limiter.Allow() {
			next.ServeHTTP(w, r)
			return
		}

		logger.Warn("rate limit exceeded", "method", r.Method, "path", r.URL.Path, "remote", r.RemoteAddr)
		w.Header().Set("Retry-After", "1")
		http.Error(w, MessageTooManyRequests, http.StatusTooManyRequests)
	})
}

func isReadOnly(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}
