// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package youtube adapts github.com/kkdai/youtube/v2 to the video.Extractor
// boundary.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	kkdai "github.com/kkdai/youtube/v2"
	"golang.org/x/time/rate"

	"github.com/ManuGH/clipgate/internal/resilience"
	"github.com/ManuGH/clipgate/internal/video"
)

// ErrRestricted marks videos that are private, login-gated or otherwise not
// playable for anonymous clients.
var ErrRestricted = errors.New("restricted video")

// Config configures an Extractor.
type Config struct {
	// MetadataClient serves the watch-page and player lookups.
	MetadataClient *http.Client
	// StreamClient serves media downloads. It must not carry an overall timeout.
	StreamClient *http.Client
	// RatePerSec and Burst bound upstream calls. RatePerSec <= 0 disables limiting.
	RatePerSec float64
	Burst      int
	// Breaker, when set, guards metadata lookups. Build it with
	// NewBreaker so restricted videos do not count as upstream failures.
	Breaker *resilience.CircuitBreaker
}

// Extractor implements video.Extractor on top of kkdai/youtube.
type Extractor struct {
	meta    *kkdai.Client
	stream  *kkdai.Client
	limiter *rate.Limiter
	breaker *resilience.CircuitBreaker
}

var _ video.Extractor = (*Extractor)(nil)

// New creates an Extractor. Nil clients are rejected so no call ever falls
// back to http.DefaultClient.
func New(cfg Config) (*Extractor, error) {
	if cfg.MetadataClient == nil || cfg.StreamClient == nil {
		return nil, fmt.Errorf("youtube: metadata and stream http clients are required")
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Extractor{
		meta:    &kkdai.Client{HTTPClient: cfg.MetadataClient},
		stream:  &kkdai.Client{HTTPClient: cfg.StreamClient},
		limiter: rate.NewLimiter(limit, burst),
		breaker: cfg.Breaker,
	}, nil
}

// Validate checks that a video ID can be extracted from rawURL.
func (e *Extractor) Validate(rawURL string) error {
	if _, err := kkdai.ExtractVideoID(rawURL); err != nil {
		return err
	}
	return nil
}

// Fetch loads the video page and maps every offered format to a Variant.
func (e *Extractor) Fetch(ctx context.Context, rawURL string) (*video.Catalog, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	var v *kkdai.Video
	lookup := func() error {
		var err error
		v, err = e.meta.GetVideoContext(ctx, rawURL)
		if err != nil {
			return classifyError(err)
		}
		return nil
	}
	var err error
	if e.breaker != nil {
		err = e.breaker.Execute(lookup)
	} else {
		err = lookup()
	}
	if err != nil {
		return nil, err
	}
	return toCatalog(v), nil
}

// NewBreaker returns a circuit breaker for metadata lookups that ignores
// restricted videos and caller cancellation.
func NewBreaker(threshold int, resetTimeout time.Duration) *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker("youtube", threshold, resetTimeout,
		resilience.WithFailurePredicate(isUpstreamFailure))
}

func isUpstreamFailure(err error) bool {
	return !errors.Is(err, ErrRestricted) && !errors.Is(err, context.Canceled)
}

// Open starts the media download for the given variant of a fetched catalog.
func (e *Extractor) Open(ctx context.Context, catalog *video.Catalog, v video.Variant) (io.ReadCloser, error) {
	if catalog == nil {
		return nil, fmt.Errorf("youtube: nil catalog")
	}
	yv, ok := catalog.Ref.(*kkdai.Video)
	if !ok || yv == nil {
		return nil, fmt.Errorf("youtube: catalog was not produced by this extractor")
	}
	format, err := findFormat(yv, v.ID)
	if err != nil {
		return nil, err
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	body, _, err := e.stream.GetStreamContext(ctx, yv, format)
	if err != nil {
		return nil, classifyError(err)
	}
	return body, nil
}

func toCatalog(v *kkdai.Video) *video.Catalog {
	c := &video.Catalog{
		Title:      v.Title,
		Duration:   v.Duration,
		Thumbnails: make([]string, 0, len(v.Thumbnails)),
		Variants:   make([]video.Variant, 0, len(v.Formats)),
		Ref:        v,
	}
	for _, t := range v.Thumbnails {
		if t.URL != "" {
			c.Thumbnails = append(c.Thumbnails, t.URL)
		}
	}
	for _, f := range v.Formats {
		c.Variants = append(c.Variants, toVariant(f))
	}
	return c
}

func toVariant(f kkdai.Format) video.Variant {
	return video.Variant{
		QualityLabel: f.QualityLabel,
		ID:           strconv.Itoa(f.ItagNo),
		HasVideo:     f.Width > 0 || f.QualityLabel != "",
		HasAudio:     f.AudioChannels > 0,
		Container:    containerOf(f.MimeType),
	}
}

// containerOf maps "video/mp4; codecs=..." to "mp4".
func containerOf(mimeType string) string {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType, _, _ = strings.Cut(mimeType, ";")
	}
	_, sub, ok := strings.Cut(strings.TrimSpace(mediaType), "/")
	if !ok {
		return ""
	}
	return strings.ToLower(sub)
}

func findFormat(v *kkdai.Video, id string) (*kkdai.Format, error) {
	itag, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("youtube: invalid itag %q", id)
	}
	for i := range v.Formats {
		if v.Formats[i].ItagNo == itag {
			return &v.Formats[i], nil
		}
	}
	return nil, fmt.Errorf("youtube: itag %d not in catalog", itag)
}

func classifyError(err error) error {
	switch {
	case errors.Is(err, kkdai.ErrLoginRequired),
		errors.Is(err, kkdai.ErrVideoPrivate),
		errors.Is(err, kkdai.ErrNotPlayableInEmbed):
		return fmt.Errorf("%w: %w", ErrRestricted, err)
	}
	var statusErr *kkdai.ErrPlayabiltyStatus
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %w", ErrRestricted, err)
	}
	return err
}
