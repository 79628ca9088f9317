// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package video resolves user-submitted video URLs into playable qualities
// and relays the selected upstream encoding to HTTP clients.
package video

import "strings"

// Source is the upstream platform a URL belongs to.
type Source string

const (
	SourceYouTube   Source = "youtube"
	SourceTwitter   Source = "twitter"
	SourceInstagram Source = "instagram"
	SourceUnknown   Source = "unknown"
)

// String implements fmt.Stringer.
func (s Source) String() string { return string(s) }

// DisplayName is the human-readable platform name used in stub titles.
func (s Source) DisplayName() string {
	switch s {
	case SourceYouTube:
		return "YouTube"
	case SourceTwitter:
		return "Twitter"
	case SourceInstagram:
		return "Instagram"
	default:
		return "Unknown"
	}
}

var sourcePatterns = []struct {
	needle string
	source Source
}{
	{"youtube.com", SourceYouTube},
	{"youtu.be", SourceYouTube},
	{"twitter.com", SourceTwitter},
	{"instagram.com", SourceInstagram},
}

// Classify tags rawURL with its origin by substring match. It never fails:
// anything unmatched is SourceUnknown. The first matching pattern wins.
func Classify(rawURL string) Source {
	lower := strings.ToLower(rawURL)
	for _, p := range sourcePatterns {
		if strings.Contains(lower, p.needle) {
			return p.source
		}
	}
	return SourceUnknown
}
