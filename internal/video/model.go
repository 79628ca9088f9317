// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package video

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ContainerMP4 is the only container ever exposed to clients.
const ContainerMP4 = "mp4"

// Variant is one upstream-offered encoding of a video.
type Variant struct {
	QualityLabel string
	ID           string // opaque upstream identifier (the itag for YouTube)
	HasVideo     bool
	HasAudio     bool
	Container    string
}

// Playable reports whether the variant carries both audio and video in an
// mp4 container, i.e. it can be played without a separate mux step.
func (v Variant) Playable() bool {
	return v.HasVideo && v.HasAudio && v.Container == ContainerMP4
}

// Quality is one selectable entry of Info.Qualities.
type Quality struct {
	Label string `json:"quality"`
	ID    string `json:"itag,omitempty"`
}

// Info is the display aggregate returned by the metadata endpoint.
type Info struct {
	Title           string    `json:"title"`
	Thumbnail       string    `json:"thumbnail,omitempty"`
	DurationSeconds int64     `json:"duration,omitempty"`
	Qualities       []Quality `json:"qualities"`
	Source          Source    `json:"source"`
}

// Catalog is the raw metadata an Extractor returns for one video.
type Catalog struct {
	Title      string
	Thumbnails []string // upstream order
	Duration   time.Duration
	Variants   []Variant

	// Ref is an extractor-private handle reused by Extractor.Open.
	Ref any
}

// Selection is the variant chosen for streaming together with the catalog
// it was resolved from.
type Selection struct {
	URL     string
	Source  Source
	Variant Variant
	Catalog *Catalog
}

// Title returns the catalog title, or an empty string.
func (s *Selection) Title() string {
	if s == nil || s.Catalog == nil {
		return ""
	}
	return s.Catalog.Title
}

// QualitySelector is the "quality" field of preview and download requests.
// The canonical form is the bare label ("720p"). A {"quality": ..., "itag": ...}
// object, or a string holding that object serialized as JSON, are accepted and
// normalized to the label. Only the label is used for matching.
type QualitySelector struct {
	Label string
}

type qualityObject struct {
	Quality string          `json:"quality"`
	Itag    json.RawMessage `json:"itag,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (q *QualitySelector) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		q.Label = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: quality: %v", ErrInvalidInput, err)
		}
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "{") {
			return q.fromObject([]byte(s))
		}
		q.Label = s
		return nil
	case '{':
		return q.fromObject(data)
	default:
		return fmt.Errorf("%w: quality must be a label or a {quality} object", ErrInvalidInput)
	}
}

func (q *QualitySelector) fromObject(data []byte) error {
	var obj qualityObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: quality object: %v", ErrInvalidInput, err)
	}
	q.Label = strings.TrimSpace(obj.Quality)
	return nil
}

// MarshalJSON emits the canonical bare-label form.
func (q QualitySelector) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Label)
}
