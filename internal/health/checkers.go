// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package health

import (
	"context"
	"os"
	"path/filepath"
)

// PingFunc probes a dependency.
type PingFunc func(ctx context.Context) error

// PingChecker reports a dependency as unhealthy when its ping fails. A
// non-critical dependency is reported as degraded instead.
type PingChecker struct {
	name     string
	ping     PingFunc
	critical bool
}

// NewPingChecker creates a checker around ping.
func NewPingChecker(name string, ping PingFunc, critical bool) *PingChecker {
	return &PingChecker{name: name, ping: ping, critical: critical}
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) CheckResult {
	if err := c.ping(ctx); err != nil {
		status := StatusDegraded
		if c.critical {
			status = StatusUnhealthy
		}
		return CheckResult{Status: status, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy, Message: "reachable"}
}

// DirChecker checks that a directory exists and accepts writes.
type DirChecker struct {
	name string
	path string
}

// NewDirChecker creates a checker for a writable directory.
func NewDirChecker(name, path string) *DirChecker {
	return &DirChecker{name: name, path: path}
}

func (c *DirChecker) Name() string { return c.name }

func (c *DirChecker) Check(_ context.Context) CheckResult {
	info, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{Status: StatusUnhealthy, Error: "directory not found", Message: c.path}
		}
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	if !info.IsDir() {
		return CheckResult{Status: StatusUnhealthy, Error: "expected directory, got file"}
	}

	f, err := os.CreateTemp(c.path, ".health-*")
	if err != nil {
		return CheckResult{Status: StatusDegraded, Error: "directory is not writable"}
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))
	return CheckResult{Status: StatusHealthy, Message: "writable"}
}
