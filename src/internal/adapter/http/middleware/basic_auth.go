package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
)

// BasicAuth checks the channel credentials the mobile client sends.
func BasicAuth(channelID, channelKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || channelKey == "" {
				logger.Error("basic auth middleware missing server configuration", nil, logger.Fields{
					"requestId": RequestIDFrom(r.Context()),
					"method":    r.Method,
					"path":      r.URL.Path,
				})
				writeError(w, http.StatusInternalServerError, "Configuración de autenticación incompleta")
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok || !secureEqual(id, channelID) || !secureEqual(key, channelKey) {
				logger.Warn("basic auth middleware unauthorized request", nil, logger.Fields{
					"requestId":   RequestIDFrom(r.Context()),
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid_or_missing",
				})
				w.Header().Set("WWW-Authenticate", `Basic realm="cotizador"`)
				writeError(w, http.StatusUnauthorized, "No autorizado")
				return
			}

			logger.Debug("basic auth middleware authorized request", logger.Fields{
				"requestId": RequestIDFrom(r.Context()),
				"method":    r.Method,
				"path":      r.URL.Path,
			})
			next.ServeHTTP(w, r)
		})
	}
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
