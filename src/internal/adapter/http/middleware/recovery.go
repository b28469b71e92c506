package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", fmt.Errorf("%v", rec), logger.Fields{
					"requestId": RequestIDFrom(r.Context()),
					"method":    r.Method,
					"path":      r.URL.Path,
					"stack":     string(debug.Stack()),
				})
				writeError(w, http.StatusInternalServerError, "Ocurrió un error inesperado, intente nuevamente")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
