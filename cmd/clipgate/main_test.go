// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/clipgate/internal/persistence/sqlite"
	"github.com/ManuGH/clipgate/internal/version"
	"github.com/ManuGH/clipgate/internal/video"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version.Version)
}

func TestStorageVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipgate.db")
	db, err := sqlite.Open(path, sqlite.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(context.Background(), db, `CREATE TABLE t (id INTEGER PRIMARY KEY)`))
	require.NoError(t, db.Close())

	out, _, err := execute(t, "storage", "verify", "--path", path, "--mode", "full")
	require.NoError(t, err)
	assert.Contains(t, out, "Integrity verified: ok")
}

func TestStorageVerify_Usage(t *testing.T) {
	_, _, err := execute(t, "storage", "verify")
	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.code)

	_, _, err = execute(t, "storage", "verify", "--path", "x.db", "--mode", "deep")
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 2, ee.code)
}

func TestStorageVerify_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not sqlite "), 512), 0o600))

	_, _, err := execute(t, "storage", "verify", "--path", path)
	require.Error(t, err)
}

func TestHealthcheck(t *testing.T) {
	var ready atomic.Bool
	ready.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/readyz" && !ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out, _, err := execute(t, "healthcheck", "--addr", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, "Healthcheck successful (ready)")

	ready.Store(false)
	_, _, err = execute(t, "healthcheck", "--addr", srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")

	_, _, err = execute(t, "healthcheck", "--addr", srv.URL, "--mode", "live")
	require.NoError(t, err)
}

func TestInfo_StubPlatform(t *testing.T) {
	t.Setenv("CLIPGATE_DATA_DIR", t.TempDir())

	out, _, err := execute(t, "info", "https://twitter.com/someone/status/1")
	require.NoError(t, err)

	var info video.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "Twitter Video", info.Title)
	assert.Equal(t, video.SourceTwitter, info.Source)
}

func TestInfo_Unsupported(t *testing.T) {
	t.Setenv("CLIPGATE_DATA_DIR", t.TempDir())

	_, _, err := execute(t, "info", "https://vimeo.com/1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, video.ErrUnsupportedPlatform))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(&exitError{code: 2, err: errors.New("usage")}))
	assert.Equal(t, 1, exitCode(errors.New("plain")))
}
