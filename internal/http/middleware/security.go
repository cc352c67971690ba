package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/his-mockup-api/internal/config"
)

// defaultHSTSMaxAge applies when HSTS is enabled without a positive max age.
const defaultHSTSMaxAge = 180 * 24 * time.Hour

// patientDataHeaders go on every API response. Bodies carry patient and
// appointment records, so they must never be cached and browsers get no
// framing, sniffing or device access.
var patientDataHeaders = [...]struct{ name, value string }{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
	{"Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()"},
	{"X-Permitted-Cross-Domain-Policies", "none"},
	{"Cache-Control", "no-store"},
	{"Pragma", "no-cache"},
	{"Expires", "0"},
}

// SecurityHeaders stamps patientDataHeaders on each response. With
// cfg.EnableHSTS, requests that arrived over HTTPS (directly or through a
// proxy setting X-Forwarded-Proto) also get Strict-Transport-Security.
//
// The correlation id set by RequestID is added to
// Access-Control-Expose-Headers so browser clients can read it.
func SecurityHeaders(cfg config.SecurityConfig) gin.HandlerFunc {
	hsts := hstsValue(cfg)
	return func(c *gin.Context) {
		h := c.Writer.Header()
		for _, kv := range patientDataHeaders {
			h.Set(kv.name, kv.value)
		}
		if hsts != "" && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}
		if h.Get(requestIDHeader) != "" {
			exposeHeader(h, requestIDHeader)
		}
		c.Next()
	}
}

// hstsValue renders the Strict-Transport-Security value, or "" when disabled.
func hstsValue(cfg config.SecurityConfig) string {
	if !cfg.EnableHSTS {
		return ""
	}
	maxAge := cfg.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	return fmt.Sprintf("max-age=%d; includeSubDomains", int64(maxAge/time.Second))
}

// exposeHeader appends name to Access-Control-Expose-Headers once.
func exposeHeader(h http.Header, name string) {
	const key = "Access-Control-Expose-Headers"
	cur := h.Get(key)
	switch {
	case cur == "":
		h.Set(key, name)
	case !strings.Contains(cur, name):
		h.Set(key, cur+", "+name)
	}
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
