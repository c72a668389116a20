// Package handlers contains the HTTP handlers of the protected storage
// service and wires them onto the router.
package handlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"protectedstorage/auth"
	"protectedstorage/metrics"
	"protectedstorage/middleware"
	"protectedstorage/notify"
	"protectedstorage/settings"
)

// InitHandlers builds the router with all routes and the middleware chain.
func InitHandlers(provider settings.Provider, gate *auth.Gate, notifier *notify.Notifier) http.Handler {
	router := httprouter.New()

	fileHandler := NewFileHandler(provider, gate, notifier)
	healthHandler := NewHealthHandler()
	usageHandler := NewUsageHandler()

	fileHandler.RegisterRoutes(router)
	healthHandler.RegisterRoutes(router)
	usageHandler.RegisterRoutes(router)

	router.Handler(http.MethodGet, "/metrics", metrics.Handler())

	return middleware.RequestLogger(metrics.HTTPMetricsMiddleware(router))
}
