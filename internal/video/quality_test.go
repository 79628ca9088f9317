// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package video

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestReduce_DedupesAndSortsDescending(t *testing.T) {
	in := []Variant{mp4("360p", "a"), mp4("720p", "b"), mp4("360p", "c"), mp4("1080p", "d")}
	want := []Quality{{Label: "1080p", ID: "d"}, {Label: "720p", ID: "b"}, {Label: "360p", ID: "a"}}

	if diff := cmp.Diff(want, Reduce(in)); diff != "" {
		t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_NonNumericLabelsLast(t *testing.T) {
	in := []Variant{mp4("hd", "1"), mp4("144p", "2"), mp4("auto", "3"), mp4("1440p60", "4")}
	got := Reduce(in)

	labels := make([]string, len(got))
	for i, q := range got {
		labels[i] = q.Label
	}
	assert.Equal(t, []string{"1440p60", "144p", "hd", "auto"}, labels)
}

func TestReduce_Empty(t *testing.T) {
	assert.Empty(t, Reduce(nil))
}

func TestReduce_KeepsFirstOccurrenceID(t *testing.T) {
	got := Reduce([]Variant{mp4("720p", "22"), mp4("720p", "136")})
	assert.Equal(t, []Quality{{Label: "720p", ID: "22"}}, got)
}

func TestLabelHeight(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"1080p", 1080, true},
		{"720p60", 720, true},
		{"144p HDR", 144, true},
		{"default", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		h, ok := LabelHeight(tt.label)
		assert.Equal(t, tt.ok, ok, tt.label)
		assert.Equal(t, tt.want, h, tt.label)
	}
}
