// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	cglog "github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/metrics"
)

// Mode selects how the relayed stream is presented to the client.
type Mode string

const (
	ModePreview  Mode = "preview"
	ModeDownload Mode = "download"
)

const (
	defaultChunkSize = 32 * 1024
	fallbackFilename = "video"
)

// Streamer relays a selected upstream variant into an HTTP response.
type Streamer struct {
	extractor Extractor
	chunkSize int
	logger    zerolog.Logger
}

// NewStreamer creates a Streamer that opens variants through extractor.
// chunkSize <= 0 selects the default of 32 KiB.
func NewStreamer(extractor Extractor, chunkSize int) *Streamer {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Streamer{
		extractor: extractor,
		chunkSize: chunkSize,
		logger:    cglog.WithComponent("streamer"),
	}
}

// Stream opens the selected variant and copies it into w.
//
// Nothing is written to w until the upstream is open, so an ErrStreamOpen
// still leaves the caller free to send a JSON error. Any failure after that
// is ErrStreamInterrupted and the response is simply cut short.
func (s *Streamer) Stream(ctx context.Context, w http.ResponseWriter, sel *Selection, mode Mode) error {
	if sel == nil {
		return fmt.Errorf("%w: no selection", ErrInvalidInput)
	}
	if sel.Source != SourceYouTube {
		return fmt.Errorf("%w: %s", ErrStreamUnsupported, sel.Source)
	}

	body, err := s.extractor.Open(ctx, sel.Catalog, sel.Variant)
	if err != nil {
		metrics.RecordStream(string(mode), false)
		return fmt.Errorf("%w: %w", ErrStreamOpen, err)
	}
	defer body.Close()
	stop := context.AfterFunc(ctx, func() { _ = body.Close() })
	defer stop()

	done := metrics.StreamStarted(string(mode))
	defer done()

	h := w.Header()
	h.Set("Content-Type", "video/mp4")
	h.Set("Cache-Control", "no-store")
	h.Set("X-Content-Type-Options", "nosniff")
	if mode == ModeDownload {
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", SanitizeFilename(sel.Title())+".mp4"))
	}
	w.WriteHeader(http.StatusOK)

	written, err := s.copy(w, body, mode)
	logger := cglog.WithContext(ctx, s.logger).With().
		Str(cglog.FieldMode, string(mode)).
		Str(cglog.FieldQuality, sel.Variant.QualityLabel).
		Str(cglog.FieldItag, sel.Variant.ID).
		Int64(cglog.FieldBytes, written).
		Logger()

	if err != nil {
		metrics.RecordStream(string(mode), false)
		if ctx.Err() != nil {
			err = errors.Join(err, ctx.Err())
		}
		logger.Warn().Err(err).Str(cglog.FieldEvent, "stream.interrupted").Msg("stream ended early")
		return fmt.Errorf("%w: %w", ErrStreamInterrupted, err)
	}

	metrics.RecordStream(string(mode), true)
	logger.Info().Str(cglog.FieldEvent, "stream.completed").Msg("stream completed")
	return nil
}

// copy pulls one chunk at a time, blocks on the client write, then flushes.
// A slow reader therefore pauses upstream reads.
func (s *Streamer) copy(w http.ResponseWriter, r io.Reader, mode Mode) (int64, error) {
	rc := http.NewResponseController(w)
	buf := make([]byte, s.chunkSize)
	var total int64
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			wn, werr := w.Write(buf[:n])
			total += int64(wn)
			metrics.AddStreamBytes(string(mode), wn)
			if werr != nil {
				return total, fmt.Errorf("write: %w", werr)
			}
			if wn != n {
				return total, fmt.Errorf("write: %w", io.ErrShortWrite)
			}
			if ferr := rc.Flush(); ferr != nil && !errors.Is(ferr, http.ErrNotSupported) {
				return total, fmt.Errorf("flush: %w", ferr)
			}
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, fmt.Errorf("read: %w", rerr)
		}
	}
}

// SanitizeFilename reduces a title to [A-Za-z0-9_ -], with every whitespace
// rune mapped to a plain space. Accented
// letters are decomposed first so "Café" becomes "Cafe". Surrounding
// whitespace is trimmed and an empty result falls back to "video".
func SanitizeFilename(title string) string {
	decomposed := norm.NFKD.String(title)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			// header values cannot carry line breaks
			b.WriteByte(' ')
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return fallbackFilename
	}
	return out
}
