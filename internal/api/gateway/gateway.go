package gateway

import (
	"log/slog"
	"net/http"
	"strings"

	"essential-notes/internal/api/http/middleware"
	"essential-notes/internal/config"

	"github.com/rs/cors"
)

// Wrap оборачивает HTTP слой в middleware.
// Порядок выполнения: CORS → Logging → Rate Limiting → handler.
func Wrap(handler http.Handler, cfg *config.ConfigGateway, logger *slog.Logger) http.Handler {
	if cfg == nil {
		cfg = &config.ConfigGateway{}
	}

	handler = middleware.RateLimit(logger, handler, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler = middleware.Logging(logger, handler)
	handler = setupCORS(cfg).Handler(handler)

	logger.Info("http middleware configured",
		"cors_origins", cfg.CORSAllowedOrigins,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
	)
	return handler
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	var origins []string
	for _, o := range strings.Split(cfg.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400 // 24 часа
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Content-Type",
			"X-Requested-With",
		},
		MaxAge: maxAge,
	})
}
