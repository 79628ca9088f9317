// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package control

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestControlImportPurity ensures that the internal/control layer does NOT have
// any transitive dependencies on the API or the service packages it fronts.
func TestControlImportPurity(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not available")
	}
	cmd := exec.Command("go", "list", "-deps", "github.com/ManuGH/clipgate/internal/control/...")
	cmd.Env = append(os.Environ(), "GOWORK=off")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	require.NoError(t, err, "Failed to run go list -deps: %s", stderr.String())

	forbidden := []string{
		"github.com/ManuGH/clipgate/internal/api",
		"github.com/ManuGH/clipgate/internal/daemon",
		"github.com/ManuGH/clipgate/internal/shortener",
		"github.com/ManuGH/clipgate/internal/messages",
		"github.com/ManuGH/clipgate/internal/profile",
		"github.com/ManuGH/clipgate/internal/video",
	}

	for _, d := range strings.Split(stdout.String(), "\n") {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		for _, prefix := range forbidden {
			assert.False(t, strings.HasPrefix(d, prefix),
				"control layer has a transitive dependency on %q", d)
		}
	}
}
