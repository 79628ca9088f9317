// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package shortener maps generated short codes to submitted http(s) URLs.
package shortener

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	cglog "github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/metrics"
	platformnet "github.com/ManuGH/clipgate/internal/platform/net"
)

const (
	// CodeLength is the length of generated codes.
	CodeLength = 7

	maxAttempts = 5
)

var (
	ErrURLRequired = errors.New("url is required")
	ErrInvalidURL  = errors.New("invalid url")
	ErrInvalidCode = errors.New("invalid short code")
	ErrNotFound    = errors.New("short link not found")
	// ErrCodeTaken is returned by stores when a code already exists.
	ErrCodeTaken = errors.New("short code already taken")
	// ErrExhausted means every generated code collided.
	ErrExhausted = errors.New("could not allocate a unique short code")
)

var codePattern = regexp.MustCompile(`^[0-9A-Za-z]{4,32}$`)

// Link is a stored short link.
type Link struct {
	Code      string    `json:"code"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists links. Put must fail with ErrCodeTaken when the code exists
// and Get must fail with ErrNotFound when it does not.
type Store interface {
	Put(ctx context.Context, link Link) error
	Get(ctx context.Context, code string) (Link, error)
	Ping(ctx context.Context) error
	Close() error
}

// Option configures a Service.
type Option func(*Service)

// WithBaseURL fixes the prefix of generated short URLs instead of using the
// request origin.
func WithBaseURL(base string) Option {
	return func(s *Service) { s.baseURL = strings.TrimRight(base, "/") }
}

// WithCodeGenerator replaces the random code source.
func WithCodeGenerator(gen func() string) Option {
	return func(s *Service) { s.generate = gen }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service creates and resolves short links.
type Service struct {
	store    Store
	baseURL  string
	generate func() string
	now      func() time.Time
	logger   zerolog.Logger
}

// NewService returns a Service backed by store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		generate: func() string { return lo.RandomString(CodeLength, lo.AlphanumericCharset) },
		now:      time.Now,
		logger:   cglog.WithComponent("shortener"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shorten validates rawURL, allocates a code and stores the link.
func (s *Service) Shorten(ctx context.Context, rawURL string) (Link, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Link{}, ErrURLRequired
	}
	canonical, err := platformnet.CanonicalURL(rawURL)
	if err != nil {
		return Link{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		link := Link{Code: s.generate(), URL: canonical, CreatedAt: s.now().UTC()}
		err := s.store.Put(ctx, link)
		if err == nil {
			metrics.IncShortLinkCreated()
			s.logger.Info().
				Str(cglog.FieldEvent, "shortlink.created").
				Str(cglog.FieldShortCode, link.Code).
				Str("url", platformnet.SanitizeURL(canonical)).
				Msg("short link created")
			return link, nil
		}
		if !errors.Is(err, ErrCodeTaken) {
			return Link{}, fmt.Errorf("store link: %w", err)
		}
		s.logger.Debug().
			Str(cglog.FieldEvent, "shortlink.collision").
			Int("attempt", attempt).
			Msg("short code collision, retrying")
	}
	return Link{}, ErrExhausted
}

// Resolve returns the link stored under code.
func (s *Service) Resolve(ctx context.Context, code string) (Link, error) {
	if !ValidCode(code) {
		return Link{}, ErrInvalidCode
	}
	link, err := s.store.Get(ctx, code)
	switch {
	case err == nil:
		metrics.IncShortLinkLookup("hit")
		return link, nil
	case errors.Is(err, ErrNotFound):
		metrics.IncShortLinkLookup("miss")
		return Link{}, err
	default:
		metrics.IncShortLinkLookup("error")
		return Link{}, fmt.Errorf("load link: %w", err)
	}
}

// ShortURL renders the public URL for code. requestBase is used when no base
// URL is configured.
func (s *Service) ShortURL(requestBase, code string) string {
	base := s.baseURL
	if base == "" {
		base = strings.TrimRight(requestBase, "/")
	}
	return base + "/s/" + code
}

// Ping checks the backing store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ValidCode reports whether code has the shape of a short code.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}
