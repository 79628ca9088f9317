// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package video

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"
)

type fakeExtractor struct {
	mu          sync.Mutex
	catalog     *Catalog
	validateErr error
	fetchErr    error
	openErr     error
	body        string
	bodyReader  func() io.ReadCloser

	fetches int
	opened  []Variant
}

func (f *fakeExtractor) Validate(rawURL string) error {
	if f.validateErr != nil {
		return f.validateErr
	}
	if !strings.Contains(rawURL, "v=") && !strings.Contains(rawURL, "youtu.be/") {
		return errors.New("cannot extract video id")
	}
	return nil
}

func (f *fakeExtractor) Fetch(ctx context.Context, _ string) (*Catalog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	// hand out a copy so callers cannot share state across requests
	c := *f.catalog
	c.Variants = append([]Variant(nil), f.catalog.Variants...)
	return &c, nil
}

func (f *fakeExtractor) Open(_ context.Context, _ *Catalog, v Variant) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, v)
	if f.openErr != nil {
		return nil, f.openErr
	}
	if f.bodyReader != nil {
		return f.bodyReader(), nil
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func mp4(label, id string) Variant {
	return Variant{QualityLabel: label, ID: id, HasVideo: true, HasAudio: true, Container: ContainerMP4}
}

func sampleCatalog() *Catalog {
	return &Catalog{
		Title:      "Never Gonna Give You Up",
		Thumbnails: []string{"https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg", "https://i.ytimg.com/vi/dQw4w9WgXcQ/hq.jpg"},
		Duration:   212*time.Second + 400*time.Millisecond,
		Variants: []Variant{
			mp4("360p", "18"),
			mp4("720p", "22"),
			{QualityLabel: "1080p", ID: "137", HasVideo: true, Container: ContainerMP4},
			{QualityLabel: "", ID: "140", HasAudio: true, Container: ContainerMP4},
			{QualityLabel: "480p", ID: "244", HasVideo: true, HasAudio: true, Container: "webm"},
			mp4("720p", "136"),
		},
	}
}
