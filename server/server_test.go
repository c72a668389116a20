package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"protectedstorage/settings"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "8080", cfg.Port, "Should default to port 8080")
	assert.Equal(t, 10*time.Second, cfg.ReadHeaderTimeout)
}

func TestDefaultConfig_PortFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	assert.Equal(t, "9000", DefaultConfig().Port)
}

func TestSetup_Routes(t *testing.T) {
	srv := Setup(DefaultConfig(), settings.Static{})

	for _, path := range []string{"/health", "/metrics", "/"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "Route %s should be registered", path)
	}

	req := httptest.NewRequest("GET", "/file", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "The file route should be password gated")
}
