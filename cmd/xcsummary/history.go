// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/xcsummary/internal/config"
	"github.com/pdiddy/xcsummary/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List summaries recorded with --record",
	Long: `History lists the summaries previously recorded with --record, newest
first. Each row is one bundle read; runs are never merged.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(settings)
	if err != nil {
		return withCode(exitUsage, err)
	}
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	store, err := history.Open(cfg.DB)
	if err != nil {
		return withCode(exitReadFailed, err)
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return withCode(exitReadFailed, err)
	}
	if err := formatHistory(cmd.OutOrStdout(), entries, format); err != nil {
		return withCode(exitUsage, err)
	}
	return nil
}

func formatHistory(w io.Writer, entries []history.Entry, format string) error {
	switch format {
	case "json":
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
	default:
		return fmt.Errorf("unknown history format %q (expected table, json, or yaml)", format)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-16s  %-8s  %-15s  %s\n",
		"ID", "Recorded", "Kind", "Result", "T/P/F/S", "Bundle")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, e := range entries {
		kind := e.Label
		if len(kind) > 16 {
			kind = kind[:13] + "..."
		}
		counts := fmt.Sprintf("%d/%d/%d/%d", e.Summary.Total, e.Summary.Passed, e.Summary.Failed, e.Summary.Skipped)
		fmt.Fprintf(w, "%-5d  %-20s  %-16s  %-8s  %-15s  %s\n",
			e.ID, e.RecordedAt.UTC().Format("2006-01-02 15:04:05"), kind, e.Summary.Result, counts, e.Bundle)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(entries))
	return nil
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(historyCmd)
}
