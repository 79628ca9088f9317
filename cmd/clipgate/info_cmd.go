// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ManuGH/clipgate/internal/platform/httpx"
	"github.com/ManuGH/clipgate/internal/upstream/youtube"
	"github.com/ManuGH/clipgate/internal/video"
)

func newInfoCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info URL",
		Short: "Print the title and available qualities of a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			yt, err := youtube.New(youtube.Config{
				MetadataClient: httpx.NewClient(cfg.Upstream.Timeout),
				StreamClient:   httpx.NewStreamingClient(),
			})
			if err != nil {
				return err
			}
			return printInfo(cmd, video.NewResolver(yt, video.WithFetchTimeout(cfg.Upstream.Timeout)), args[0])
		},
	}
}

func printInfo(cmd *cobra.Command, resolver *video.Resolver, rawURL string) error {
	info, err := resolver.FetchInfo(cmd.Context(), rawURL)
	if err != nil {
		return fmt.Errorf("fetch info: %w", err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
