// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ManuGH/clipgate/internal/persistence/sqlite"
)

func newStorageCmd() *cobra.Command {
	storage := &cobra.Command{
		Use:   "storage",
		Short: "Inspect the SQLite database",
	}

	var path, mode string
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Check database integrity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode = strings.ToLower(strings.TrimSpace(mode))
			if mode != string(sqlite.CheckQuick) && mode != string(sqlite.CheckFull) {
				return &exitError{code: 2, err: fmt.Errorf("invalid mode %q, use quick or full", mode)}
			}
			if path == "" {
				return &exitError{code: 2, err: errors.New("--path is required")}
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Verifying integrity of %s (mode: %s)...\n", path, mode)
			issues, err := sqlite.VerifyIntegrity(cmd.Context(), path, sqlite.CheckMode(mode))
			if err != nil {
				return fmt.Errorf("verification interrupted: %w", err)
			}
			if issues != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Corruption detected:")
				for _, issue := range issues {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", issue)
				}
				return &exitError{code: 1, err: errors.New("integrity check failed")}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Integrity verified: ok")
			return nil
		},
	}
	verify.Flags().StringVar(&path, "path", "", "path to the SQLite database file")
	verify.Flags().StringVar(&mode, "mode", string(sqlite.CheckQuick), "verification mode: quick or full")

	storage.AddCommand(verify)
	return storage
}
