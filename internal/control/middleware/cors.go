// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
)

// OriginSet is an allowlist of CORS origins that can be swapped at runtime
// when the configuration is reloaded.
type OriginSet struct {
	v atomic.Pointer[map[string]bool]
}

// NewOriginSet creates an OriginSet holding origins.
func NewOriginSet(origins []string) *OriginSet {
	s := &OriginSet{}
	s.Set(origins)
	return s
}

// Set replaces the allowlist. "*" allows every origin.
func (s *OriginSet) Set(origins []string) {
	m := make(map[string]bool, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "*" {
			m["*"] = true
			continue
		}
		if normalized, ok := normalizeOrigin(trimmed); ok {
			m[normalized] = true
		}
	}
	s.v.Store(&m)
}

// Allows reports whether origin is in the allowlist.
func (s *OriginSet) Allows(origin string) bool {
	m := *s.v.Load()
	if m["*"] {
		return true
	}
	normalized, ok := normalizeOrigin(origin)
	return ok && m[normalized]
}

// CORS returns a middleware that sets Cross-Origin Resource Sharing headers
// for origins in the set. Preflight requests are answered directly.
func CORS(origins *OriginSet, allowCredentials bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()

			// Browsers block the response when Allow-Origin is absent.
			if origin != "" && origins.Allows(origin) {
				h.Set("Access-Control-Allow-Origin", origin)
				if allowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			h.Set("Access-Control-Expose-Headers", "Content-Disposition, Date, X-Request-ID")
			h.Set("Access-Control-Max-Age", "600")

			vary := h.Get("Vary")
			if vary == "" {
				h.Set("Vary", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers")
			} else if !strings.Contains(vary, "Origin") {
				h.Set("Vary", vary+", Origin")
			}

			if r.Method == http.MethodOptions {
				h.Set("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// normalizeOrigin lowercases scheme and host and drops default ports so that
// "http://LOCALHOST:80" and "http://localhost" compare equal.
func normalizeOrigin(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" || strings.ContainsAny(host, " \t\r\n/@\\") {
		return "", false
	}

	port := parsed.Port()
	if port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil || portNum < 1 || portNum > 65535 {
			return "", false
		}
	}

	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}

	authority := host
	if ip := net.ParseIP(host); ip != nil && strings.Contains(host, ":") {
		authority = "[" + host + "]"
	}
	if port != "" {
		authority = net.JoinHostPort(host, port)
	}

	return scheme + "://" + authority, true
}
