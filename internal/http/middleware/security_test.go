package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/config"
	"github.com/IIEWFL/cldv6212-part-1-ST10377152-Tival-Koovarjee/internal/http/middleware"
	"github.com/stretchr/testify/assert"
)

func serveWithSecurity(cfg *config.SecurityConfig, inner http.Handler) *httptest.ResponseRecorder {
	handler := middleware.SecurityHeaders(cfg)(inner)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers", nil))
	return w
}

func TestSecurityHeaders_DefaultConfig(t *testing.T) {
	cfg := &config.SecurityConfig{
		ContentTypeNosniff:    true,
		FrameOptions:          "DENY",
		XSSProtection:         "1; mode=block",
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' https: data:",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=()",
	}

	w := serveWithSecurity(cfg, okHandler())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "1; mode=block", w.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "default-src 'self'; img-src 'self' https: data:", w.Header().Get("Content-Security-Policy"))
	assert.Equal(t, "strict-origin-when-cross-origin", w.Header().Get("Referrer-Policy"))
	assert.Equal(t, "geolocation=(), microphone=(), camera=()", w.Header().Get("Permissions-Policy"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SecurityConfig
		want string
	}{
		{
			name: "max age only",
			cfg:  config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 31536000},
			want: "max-age=31536000",
		},
		{
			name: "subdomains",
			cfg:  config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 300, HSTSIncludeSubdomains: true},
			want: "max-age=300; includeSubDomains",
		},
		{
			name: "subdomains and preload",
			cfg:  config.SecurityConfig{EnableHSTS: true, HSTSMaxAge: 63072000, HSTSIncludeSubdomains: true, HSTSPreload: true},
			want: "max-age=63072000; includeSubDomains; preload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithSecurity(&tt.cfg, okHandler())
			assert.Equal(t, tt.want, w.Header().Get("Strict-Transport-Security"))
		})
	}
}

func TestSecurityHeaders_EmptyValuesAreNotSet(t *testing.T) {
	w := serveWithSecurity(&config.SecurityConfig{}, okHandler())

	for _, name := range []string{
		"X-Content-Type-Options",
		"X-Frame-Options",
		"X-XSS-Protection",
		"Content-Security-Policy",
		"Referrer-Policy",
		"Permissions-Policy",
	} {
		_, present := w.Header()[name]
		assert.False(t, present, name)
	}
}

func TestSecurityHeaders_RemovesServerHeaders(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.SecurityHeaders(&config.SecurityConfig{})(inner)

	w := httptest.NewRecorder()
	w.Header().Set("Server", "abc-retail")
	w.Header().Set("X-Powered-By", "go")
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/customers", nil))

	assert.Empty(t, w.Header().Get("Server"))
	assert.Empty(t, w.Header().Get("X-Powered-By"))
}
