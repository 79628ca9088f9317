// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyIntegrity_Healthy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthy.db")
	db, err := Open(path, DefaultConfig())
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE links (code TEXT PRIMARY KEY, url TEXT)`)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		_, err = db.Exec(`INSERT INTO links (code, url) VALUES (?, ?)`, filepath.Base(t.Name())+string(rune('a'+i%26))+string(rune('A'+i/26)), "https://example.com")
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	for _, mode := range []CheckMode{CheckQuick, CheckFull} {
		issues, err := VerifyIntegrity(context.Background(), path, mode)
		require.NoError(t, err, mode)
		assert.Nil(t, issues, mode)
	}
}

func TestVerifyIntegrity_NotADatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	garbage := make([]byte, 8192)
	for i := range garbage {
		garbage[i] = byte(i * 7)
	}
	require.NoError(t, os.WriteFile(path, garbage, 0o600))

	_, err := VerifyIntegrity(context.Background(), path, CheckQuick)
	assert.Error(t, err)
}
