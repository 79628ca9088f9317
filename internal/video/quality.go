// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package video

import (
	"sort"
	"strconv"

	"github.com/samber/lo"
)

// Reduce collapses variants to one Quality per label, keeping the first
// occurrence, ordered by descending numeric label prefix ("1080p60" -> 1080).
// Labels without a numeric prefix go last in first-appearance order.
func Reduce(variants []Variant) []Quality {
	unique := lo.UniqBy(variants, func(v Variant) string { return v.QualityLabel })
	out := lo.Map(unique, func(v Variant, _ int) Quality {
		return Quality{Label: v.QualityLabel, ID: v.ID}
	})

	sort.SliceStable(out, func(i, j int) bool {
		hi, okI := LabelHeight(out[i].Label)
		hj, okJ := LabelHeight(out[j].Label)
		switch {
		case okI && okJ:
			return hi > hj
		case okI != okJ:
			return okI
		default:
			return false
		}
	})
	return out
}

// LabelHeight parses the leading decimal digits of a quality label.
func LabelHeight(label string) (int, bool) {
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(label[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
