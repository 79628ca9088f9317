// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package profile stores uploaded profile photos below the data directory.
package profile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	cglog "github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/metrics"
)

// DefaultMaxBytes bounds a single photo.
const DefaultMaxBytes = 5 << 20

const (
	// URLPrefix is where uploads are served from.
	URLPrefix = "/uploads"

	photoDir = "profile_photos"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrNotImage         = errors.New("only image uploads are allowed")
	ErrTooLarge         = errors.New("photo exceeds the size limit")
)

// extensions maps sniffed image types to file extensions.
var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// Profile is the response of an update.
type Profile struct {
	Username     string  `json:"username"`
	ProfilePhoto *string `json:"profilePhoto"`
}

// Store writes photos to <root>/profile_photos.
type Store struct {
	root     string
	maxBytes int64
	logger   zerolog.Logger
}

// NewStore returns a Store rooted at root (the directory served under
// URLPrefix). maxBytes <= 0 selects DefaultMaxBytes.
func NewStore(root string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{
		root:     root,
		maxBytes: maxBytes,
		logger:   cglog.WithComponent("profile"),
	}
}

// Root is the directory served under URLPrefix.
func (s *Store) Root() string { return s.root }

// MaxBytes is the per-photo size limit.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Update records username and, when photo is non-nil, stores the photo under
// a fresh random name. The content type is sniffed from the bytes; the
// client-declared type is not trusted.
func (s *Store) Update(ctx context.Context, username string, photo io.Reader) (Profile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Profile{}, ErrUsernameRequired
	}
	out := Profile{Username: username}
	if photo == nil {
		return out, nil
	}

	name, err := s.save(ctx, photo)
	metrics.IncUpload(err == nil)
	if err != nil {
		return Profile{}, err
	}
	url := path.Join(URLPrefix, photoDir, name)
	out.ProfilePhoto = &url
	return out, nil
}

func (s *Store) save(ctx context.Context, photo io.Reader) (string, error) {
	logger := cglog.WithComponentFromContext(ctx, "profile")

	br := bufio.NewReaderSize(photo, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read photo: %w", err)
	}
	ext, ok := extensions[http.DetectContentType(head)]
	if !ok {
		return "", ErrNotImage
	}

	dir := filepath.Join(s.root, photoDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	dest := filepath.Join(dir, name)

	pendingFile, err := renameio.NewPendingFile(dest, renameio.WithPermissions(0o644))
	if err != nil {
		return "", fmt.Errorf("create pending photo file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending photo file")
		}
	}()

	n, err := io.Copy(pendingFile, io.LimitReader(br, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	if n > s.maxBytes {
		return "", ErrTooLarge
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return "", fmt.Errorf("atomically replace photo file: %w", err)
	}

	logger.Info().
		Str(cglog.FieldEvent, "profile.photo_saved").
		Str("file", name).
		Int64(cglog.FieldBytes, n).
		Msg("profile photo saved")
	return name, nil
}
