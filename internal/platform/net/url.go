// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package net holds URL and host helpers shared by the HTTP handlers.
package net

import (
	"fmt"
	"net/url"
	"strings"
)

// MaxURLLength bounds user-submitted URLs.
const MaxURLLength = 2048

// SanitizeURL removes user info and query parameters for safe logging.
// YouTube video IDs live in the query, so the "v" parameter is kept.
func SanitizeURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url-redacted"
	}
	v := parsedURL.Query().Get("v")
	parsedURL.User = nil
	parsedURL.RawQuery = ""
	if v != "" {
		parsedURL.RawQuery = url.Values{"v": {v}}.Encode()
	}
	return parsedURL.String()
}

// ParseDirectHTTPURL validates if a string is a safe, direct HTTP/HTTPS URL.
// It enforces:
//   - Scheme must be "http" or "https"
//   - Host must be non-empty
//   - No embedded User/Password credentials
func ParseDirectHTTPURL(s string) (*url.URL, bool) {
	s = strings.TrimSpace(s)
	if len(s) > MaxURLLength {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, false
	}

	if u.Host == "" {
		return nil, false
	}

	if u.User != nil {
		return nil, false
	}

	return u, true
}

// CanonicalURL validates raw with ParseDirectHTTPURL and rewrites the scheme
// and host into canonical form (lowercase, IDNA A-label). Path, query and
// fragment are preserved untouched.
func CanonicalURL(raw string) (string, error) {
	u, ok := ParseDirectHTTPURL(raw)
	if !ok {
		return "", fmt.Errorf("not a direct http(s) url")
	}
	host, err := NormalizeHost(u.Hostname())
	if err != nil {
		return "", err
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" {
		host += ":" + port
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = host
	return u.String(), nil
}
