// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/momentmillionaer/internal/config"
	"github.com/tomtom215/momentmillionaer/internal/logging"
	"github.com/tomtom215/momentmillionaer/internal/notion"
	"github.com/tomtom215/momentmillionaer/internal/sync"
)

// source is the part of the Notion client the commands need.
type source interface {
	Configured() bool
	ResolveDatabaseID(ctx context.Context) (string, error)
	QueryDatabase(ctx context.Context, databaseID string) ([]notion.Page, error)
	RetrieveDatabase(ctx context.Context, databaseID string) (*notion.Database, error)
}

// env is built once per invocation by the root command's PersistentPreRunE.
type env struct {
	cfg        *config.Config
	client     source
	normalizer *notion.Normalizer
	now        func() time.Time
}

func newEnv(cfg *config.Config) *env {
	loc := cfg.Server.Location()
	return &env{
		cfg:        cfg,
		client:     notion.NewClient(&cfg.Notion),
		normalizer: notion.NewNormalizer(notion.NewClassifier(cfg.Notion.TrustedImageHosts), cfg.Notion.AudienceProperty, loc),
		now:        time.Now,
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "momentctl",
		Short:         "Operator tooling for the Momentmillionär backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				if err := os.Setenv(config.ConfigPathEnvVar, path); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.Logging.Level
			if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
				level = flagLevel
			}
			logging.Init(logging.Config{Level: level, Format: "console"})
			*e = *newEnv(cfg)
			return nil
		},
	}
	root.PersistentFlags().String("config", "", "path to config.yaml (overrides CONFIG_PATH)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newCheckCmd(e, out), newEventsCmd(e, out))
	return root
}

func newCheckCmd(e *env, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify Notion credentials and database discovery",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), out, e.client, e.cfg.Notion.AudienceProperty)
		},
	}
}

func newEventsCmd(e *env, out io.Writer) *cobra.Command {
	var summary bool
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Fetch all events once and print them as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if summary {
				return runSummary(cmd.Context(), out, e.client, e.normalizer, e.now(), e.cfg.Server.Location())
			}
			return runEvents(cmd.Context(), out, e.client, e.normalizer)
		},
	}
	cmd.Flags().BoolVar(&summary, "summary", false, "print counts per date bucket instead of the events")
	return cmd
}

// runCheck fails with notion.ErrNotConfigured when credentials are missing.
func runCheck(ctx context.Context, out io.Writer, src source, audienceProperty string) error {
	if !src.Configured() {
		return fmt.Errorf("NOTION_TOKEN and NOTION_PAGE_URL must be set: %w", notion.ErrNotConfigured)
	}

	id, err := src.ResolveDatabaseID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve database: %w", err)
	}
	db, err := src.RetrieveDatabase(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to retrieve database %s: %w", id, err)
	}

	fmt.Fprintf(out, "database: %s (%s)\n", db.PlainTitle(), id)
	if options, ok := db.Options(audienceProperty); ok {
		fmt.Fprintf(out, "audiences: %d options in %q\n", len(options), audienceProperty)
	} else {
		fmt.Fprintf(out, "audiences: property %q not found\n", audienceProperty)
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func fetchPages(ctx context.Context, src source) ([]notion.Page, error) {
	if !src.Configured() {
		return nil, notion.ErrNotConfigured
	}
	id, err := src.ResolveDatabaseID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database: %w", err)
	}
	pages, err := src.QueryDatabase(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query database %s: %w", id, err)
	}
	return pages, nil
}

func runEvents(ctx context.Context, out io.Writer, src source, normalizer *notion.Normalizer) error {
	pages, err := fetchPages(ctx, src)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(normalizer.NormalizeAll(pages), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func runSummary(ctx context.Context, out io.Writer, src source, normalizer *notion.Normalizer, now time.Time, loc *time.Location) error {
	pages, err := fetchPages(ctx, src)
	if err != nil {
		return err
	}
	snap := sync.Bucketize(normalizer.NormalizeAll(pages), now, loc)
	buckets := snap.Buckets()

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "total: %d\n", snap.Total)
	for _, name := range names {
		fmt.Fprintf(out, "%s: %d\n", name, buckets[name])
	}
	return nil
}
