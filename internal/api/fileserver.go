// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ManuGH/clipgate/internal/log"
)

// uploadsFileServer serves files below the profile upload root with checks
// against path traversal, symlink escapes and directory listing.
func (s *Server) uploadsFileServer() http.Handler {
	root := s.deps.Profiles.Root()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.WithComponentFromContext(r.Context(), "uploads")

		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			recordFileRequestDenied("method_not_allowed")
			writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		path := r.URL.Path
		if isPathTraversal(path) {
			logger.Warn().Str("event", "file_req.denied").Str("path", path).Str("reason", "path_escape").Msg("detected traversal sequence")
			recordFileRequestDenied("path_escape")
			writeError(w, r, http.StatusForbidden, "Forbidden")
			return
		}
		if strings.HasSuffix(path, "/") || path == "" {
			recordFileRequestDenied("directory_listing")
			writeError(w, r, http.StatusForbidden, "Forbidden")
			return
		}

		absRoot, err := filepath.Abs(root)
		if err != nil {
			logger.Error().Err(err).Str("event", "file_req.internal_error").Msg("could not get absolute upload root")
			recordFileRequestDenied("internal_error")
			writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}

		realPath, err := filepath.EvalSymlinks(filepath.Join(absRoot, filepath.FromSlash(path)))
		if err != nil {
			if os.IsNotExist(err) {
				recordFileRequestDenied("not_found")
				writeError(w, r, http.StatusNotFound, "File not found")
				return
			}
			logger.Error().Err(err).Str("event", "file_req.internal_error").Str("path", path).Msg("could not evaluate symlinks")
			recordFileRequestDenied("internal_error")
			writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		realRoot, err := filepath.EvalSymlinks(absRoot)
		if err != nil {
			logger.Error().Err(err).Str("event", "file_req.internal_error").Msg("could not evaluate symlinks on upload root")
			recordFileRequestDenied("internal_error")
			writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}

		relPath, err := filepath.Rel(realRoot, realPath)
		if err != nil || strings.HasPrefix(relPath, "..") || filepath.IsAbs(relPath) {
			logger.Warn().
				Str("event", "file_req.denied").
				Str("path", path).
				Str("resolved_path", realPath).
				Str("reason", "path_escape").
				Msg("path escapes upload root")
			recordFileRequestDenied("path_escape")
			writeError(w, r, http.StatusForbidden, "Forbidden")
			return
		}

		// #nosec G304 -- realPath is validated to reside inside the upload root
		f, err := os.Open(realPath)
		if err != nil {
			logger.Error().Err(err).Str("event", "file_req.internal_error").Str("path", realPath).Msg("could not open file")
			recordFileRequestDenied("internal_error")
			writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			recordFileRequestDenied("internal_error")
			writeError(w, r, http.StatusInternalServerError, "Internal server error")
			return
		}
		if info.IsDir() {
			recordFileRequestDenied("directory_listing")
			writeError(w, r, http.StatusForbidden, "Forbidden")
			return
		}

		// Uploaded names are random and never rewritten, so the weak ETag only
		// changes if an operator replaces the file by hand.
		etag := fmt.Sprintf(`W/"%x-%x"`, info.ModTime().UnixNano(), info.Size())
		w.Header().Set("ETag", etag)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.Header().Set("X-Content-Type-Options", "nosniff")

		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			recordFileCacheHit()
			w.WriteHeader(http.StatusNotModified)
			return
		}

		recordFileRequestAllowed()
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	})
}

// isPathTraversal performs robust checks against path traversal attempts.
// It decodes the input multiple times to catch double-encoding, applies
// Unicode normalization, and searches for dangerous sequences including NULs.
func isPathTraversal(p string) bool {
	decoded := p
	for i := 0; i < 3; i++ {
		prev := decoded
		if d, err := url.PathUnescape(decoded); err == nil {
			decoded = d
		} else if d2, err2 := url.QueryUnescape(decoded); err2 == nil {
			decoded = d2
		}
		if decoded == prev {
			break
		}
	}

	lower := strings.ToLower(decoded)
	for _, pat := range []string{"..", "%00", "\x00", "%c0%ae", "%e0%80%ae", "\\"} {
		if strings.Contains(lower, pat) {
			return true
		}
	}

	normalized := strings.ToLower(norm.NFC.String(decoded))
	return strings.Contains(normalized, "..")
}
