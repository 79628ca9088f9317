// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigHolder_ReloadNotifiesListeners(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "dataDir: "+dir+"\nlogLevel: info\n")
	loader := NewLoader(path, "test")
	initial, err := loader.Load()
	require.NoError(t, err)

	holder := NewConfigHolder(initial, loader, path)
	ch := make(chan AppConfig, 1)
	holder.RegisterListener(ch)

	require.NoError(t, os.WriteFile(path, []byte("dataDir: "+dir+"\nlogLevel: debug\n"), 0o600))
	require.NoError(t, holder.Reload(context.Background()))

	assert.Equal(t, "debug", holder.Get().LogLevel)
	select {
	case got := <-ch:
		assert.Equal(t, "debug", got.LogLevel)
	default:
		t.Fatal("listener was not notified")
	}
}

func TestConfigHolder_InvalidReloadKeepsOldConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "dataDir: "+dir+"\n")
	loader := NewLoader(path, "test")
	initial, err := loader.Load()
	require.NoError(t, err)
	holder := NewConfigHolder(initial, loader, path)

	require.NoError(t, os.WriteFile(path, []byte("dataDir: "+dir+"\nlogLevel: shouting\n"), 0o600))
	require.Error(t, holder.Reload(context.Background()))
	assert.Equal(t, "info", holder.Get().LogLevel)
}

func TestConfigHolder_WatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "dataDir: "+dir+"\n")
	loader := NewLoader(path, "test")
	initial, err := loader.Load()
	require.NoError(t, err)
	holder := NewConfigHolder(initial, loader, path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, holder.StartWatcher(ctx))

	require.NoError(t, os.WriteFile(path, []byte("dataDir: "+dir+"\nlogLevel: warn\n"), 0o600))

	assert.Eventually(t, func() bool {
		return holder.Get().LogLevel == "warn"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestConfigHolder_WatcherDisabledWithoutFile(t *testing.T) {
	holder := NewConfigHolder(Defaults(), NewLoader("", "test"), "")
	assert.NoError(t, holder.StartWatcher(context.Background()))
}
