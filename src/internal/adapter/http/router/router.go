package router

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/controller"
	"github.com/api-sage/mortgage-quote-service/src/internal/adapter/http/middleware"
	"github.com/api-sage/mortgage-quote-service/src/internal/commons"
	"github.com/api-sage/mortgage-quote-service/src/internal/logger"
	"github.com/gorilla/mux"
)

const healthTimeout = 2 * time.Second

type RouteRegistrar interface {
	RegisterRoutes(r *mux.Router)
}

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Options struct {
	AuthMiddleware func(http.Handler) http.Handler
	RateLimit      func(http.Handler) http.Handler
	HealthCheckers map[string]HealthChecker
}

// New mounts the quoting API under /api. Recovery and request ids wrap
// every route, including the 404 and 405 fallbacks.
func New(customerController, loanApplicationController RouteRegistrar, opts Options) http.Handler {
	root := mux.NewRouter()
	root.NotFoundHandler = http.HandlerFunc(controller.NotFound)
	root.MethodNotAllowedHandler = http.HandlerFunc(controller.MethodNotAllowed)

	registerSwaggerRoutes(root)
	root.HandleFunc("/healthz", healthHandler(opts.HealthCheckers)).Methods(http.MethodGet)

	api := root.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = root.NotFoundHandler
	api.MethodNotAllowedHandler = root.MethodNotAllowedHandler
	if opts.RateLimit != nil {
		api.Use(opts.RateLimit)
	}
	if opts.AuthMiddleware != nil {
		api.Use(opts.AuthMiddleware)
	}

	if customerController != nil {
		customerController.RegisterRoutes(api)
	}
	if loanApplicationController != nil {
		loanApplicationController.RegisterRoutes(api)
	}

	return middleware.Recovery(middleware.RequestID(root))
}

type healthStatus struct {
	Checks map[string]string `json:"checks"`
}

func healthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		result := healthStatus{Checks: make(map[string]string, len(checkers))}
		for name, checker := range checkers {
			if err := checker.Ping(ctx); err != nil {
				logger.Warn("health check failed", err, logger.Fields{"component": name})
				result.Checks[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			result.Checks[name] = "up"
		}

		response := commons.SuccessResponse("ok", result)
		if status != http.StatusOK {
			response = commons.Response[healthStatus]{Success: false, Message: "unavailable", Data: &result}
		}

		writeJSON(w, status, response)
	}
}
