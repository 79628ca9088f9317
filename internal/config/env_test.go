// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseHelpers(t *testing.T) {
	t.Setenv("CLIPGATE_T_INT", "42")
	t.Setenv("CLIPGATE_T_BAD_INT", "forty-two")
	t.Setenv("CLIPGATE_T_BOOL", "true")
	t.Setenv("CLIPGATE_T_DUR", "1m30s")
	t.Setenv("CLIPGATE_T_FLOAT", "0.25")
	t.Setenv("CLIPGATE_T_EMPTY", "")
	t.Setenv("CLIPGATE_T_I64", "6291456")

	assert.Equal(t, 42, ParseInt("CLIPGATE_T_INT", 1))
	assert.Equal(t, 1, ParseInt("CLIPGATE_T_BAD_INT", 1))
	assert.Equal(t, 7, ParseInt("CLIPGATE_T_MISSING", 7))
	assert.True(t, ParseBool("CLIPGATE_T_BOOL", false))
	assert.Equal(t, 90*time.Second, ParseDuration("CLIPGATE_T_DUR", time.Second))
	assert.InDelta(t, 0.25, ParseFloat("CLIPGATE_T_FLOAT", 1), 1e-9)
	assert.Equal(t, "fallback", ParseString("CLIPGATE_T_EMPTY", "fallback"))
	assert.EqualValues(t, 6291456, ParseInt64("CLIPGATE_T_I64", 0))
}

func TestParseList(t *testing.T) {
	t.Setenv("CLIPGATE_T_LIST", " a , b,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, ParseList("CLIPGATE_T_LIST", nil))
	assert.Equal(t, []string{"x"}, ParseList("CLIPGATE_T_NOPE", []string{"x"}))
}

func TestIsSensitiveKey(t *testing.T) {
	assert.True(t, isSensitiveKey("CLIPGATE_REDIS_PASSWORD"))
	assert.False(t, isSensitiveKey("CLIPGATE_REDIS_ADDR"))
}
