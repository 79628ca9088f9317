// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"

	cglog "github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/metrics"
	"github.com/ManuGH/clipgate/internal/telemetry"
)

var tracer = telemetry.Tracer("clipgate/video")

// DefaultFetchTimeout bounds a single upstream metadata fetch.
const DefaultFetchTimeout = 30 * time.Second

// Extractor is the boundary to an upstream platform library.
type Extractor interface {
	// Validate checks the URL against the upstream's own URL shape rules.
	Validate(rawURL string) error
	// Fetch retrieves the full catalog for rawURL.
	Fetch(ctx context.Context, rawURL string) (*Catalog, error)
	// Open starts streaming the given variant of a fetched catalog.
	Open(ctx context.Context, catalog *Catalog, v Variant) (io.ReadCloser, error)
}

// ResolverOption customizes a Resolver.
type ResolverOption func(*Resolver)

// WithFetchTimeout overrides DefaultFetchTimeout. Zero or negative disables it.
func WithFetchTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.fetchTimeout = d }
}

// WithLogger sets the component logger.
func WithLogger(l zerolog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// Resolver turns URLs into Info listings and exact Selections. It holds no
// per-request state and is safe for concurrent use.
type Resolver struct {
	youtube      Extractor
	fetchTimeout time.Duration
	logger       zerolog.Logger
}

// NewResolver creates a Resolver backed by the given YouTube extractor.
func NewResolver(youtube Extractor, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		youtube:      youtube,
		fetchTimeout: DefaultFetchTimeout,
		logger:       cglog.WithComponent("resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchInfo resolves rawURL into the display listing of playable qualities.
func (r *Resolver) FetchInfo(ctx context.Context, rawURL string) (*Info, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidInput)
	}

	source := Classify(rawURL)
	switch source {
	case SourceYouTube:
		info, err := r.fetchYouTube(ctx, rawURL)
		metrics.RecordResolution(source.String(), resolutionResult(err))
		return info, err
	case SourceTwitter, SourceInstagram:
		metrics.RecordResolution(source.String(), "stub")
		return stubInfo(source), nil
	default:
		metrics.RecordResolution(source.String(), "unsupported")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, source)
	}
}

// SelectVariant re-fetches the catalog and returns the first playable variant
// whose label equals qualityLabel. Nothing from an earlier listing is reused.
func (r *Resolver) SelectVariant(ctx context.Context, rawURL, qualityLabel string) (*Selection, error) {
	rawURL = strings.TrimSpace(rawURL)
	qualityLabel = strings.TrimSpace(qualityLabel)
	if rawURL == "" || qualityLabel == "" {
		return nil, fmt.Errorf("%w: url and quality are required", ErrInvalidInput)
	}

	source := Classify(rawURL)
	if source != SourceYouTube {
		return nil, fmt.Errorf("%w: %s", ErrStreamUnsupported, source)
	}

	catalog, err := r.fetchCatalog(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	for _, v := range catalog.Variants {
		if v.QualityLabel == qualityLabel && v.Playable() {
			r.logger.Debug().
				Str(cglog.FieldEvent, "variant.selected").
				Str(cglog.FieldQuality, v.QualityLabel).
				Str(cglog.FieldItag, v.ID).
				Msg("variant selected")
			return &Selection{URL: rawURL, Source: source, Variant: v, Catalog: catalog}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrQualityUnavailable, qualityLabel)
}

func (r *Resolver) fetchYouTube(ctx context.Context, rawURL string) (*Info, error) {
	catalog, err := r.fetchCatalog(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	playable := make([]Variant, 0, len(catalog.Variants))
	for _, v := range catalog.Variants {
		if v.Playable() {
			playable = append(playable, v)
		}
	}

	info := &Info{
		Title:           catalog.Title,
		DurationSeconds: int64(catalog.Duration / time.Second),
		Qualities:       Reduce(playable),
		Source:          SourceYouTube,
	}
	if len(catalog.Thumbnails) > 0 {
		info.Thumbnail = catalog.Thumbnails[0]
	}
	return info, nil
}

func (r *Resolver) fetchCatalog(ctx context.Context, rawURL string) (*Catalog, error) {
	if r.youtube == nil {
		return nil, fmt.Errorf("%w: no extractor configured", ErrUnsupportedPlatform)
	}
	if err := r.youtube.Validate(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	fetchCtx := ctx
	if r.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, r.fetchTimeout)
		defer cancel()
	}

	fetchCtx, span := tracer.Start(fetchCtx, "upstream.fetch")
	span.SetAttributes(telemetry.VideoAttributes(SourceYouTube.String(), "", "")...)
	defer span.End()

	start := time.Now()
	catalog, err := r.youtube.Fetch(fetchCtx, rawURL)
	metrics.ObserveUpstreamFetch(SourceYouTube.String(), err == nil, time.Since(start))
	if err != nil {
		span.SetStatus(codes.Error, "upstream fetch failed")
		span.SetAttributes(telemetry.ErrorAttributes("upstream_fetch")...)
		logger := cglog.WithContext(ctx, r.logger)
		logger.Warn().
			Err(err).
			Str(cglog.FieldEvent, "upstream.fetch_failed").
			Str(cglog.FieldSource, SourceYouTube.String()).
			Msg("upstream metadata fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrMetadataFetch, err)
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: empty catalog", ErrMetadataFetch)
	}
	return catalog, nil
}

func stubInfo(source Source) *Info {
	return &Info{
		Title:     source.DisplayName() + " Video",
		Qualities: []Quality{{Label: "default"}},
		Source:    source,
	}
}

func resolutionResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	default:
		return "failure"
	}
}
