// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package profile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes returns a PNG signature followed by padding.
func pngBytes(size int) []byte {
	b := make([]byte, size)
	copy(b, "\x89PNG\r\n\x1a\n")
	return b
}

func TestUpdate_SavesPhoto(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, 0)
	assert.EqualValues(t, DefaultMaxBytes, store.MaxBytes())

	p, err := store.Update(context.Background(), " sam ", bytes.NewReader(pngBytes(2048)))
	require.NoError(t, err)
	assert.Equal(t, "sam", p.Username)
	require.NotNil(t, p.ProfilePhoto)
	assert.True(t, strings.HasPrefix(*p.ProfilePhoto, "/uploads/profile_photos/"), *p.ProfilePhoto)
	assert.True(t, strings.HasSuffix(*p.ProfilePhoto, ".png"), *p.ProfilePhoto)

	name := filepath.Base(*p.ProfilePhoto)
	data, err := os.ReadFile(filepath.Join(root, "profile_photos", name))
	require.NoError(t, err)
	assert.Len(t, data, 2048)
}

func TestUpdate_WithoutPhoto(t *testing.T) {
	p, err := NewStore(t.TempDir(), 0).Update(context.Background(), "sam", nil)
	require.NoError(t, err)
	assert.Nil(t, p.ProfilePhoto)
}

func TestUpdate_Rejections(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, 1024)
	ctx := context.Background()

	_, err := store.Update(ctx, "  ", bytes.NewReader(pngBytes(10)))
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = store.Update(ctx, "sam", strings.NewReader("<svg xmlns='http://www.w3.org/2000/svg'></svg>"))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = store.Update(ctx, "sam", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = store.Update(ctx, "sam", bytes.NewReader(pngBytes(1025)))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, _ := os.ReadDir(filepath.Join(root, "profile_photos"))
	assert.Empty(t, entries, "rejected uploads must not leave files behind")
}

func TestUpdate_ExactLimitAccepted(t *testing.T) {
	store := NewStore(t.TempDir(), 1024)
	_, err := store.Update(context.Background(), "sam", bytes.NewReader(pngBytes(1024)))
	assert.NoError(t, err)
}
