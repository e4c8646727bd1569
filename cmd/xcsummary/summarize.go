// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/xcsummary/internal/config"
	"github.com/pdiddy/xcsummary/internal/history"
	"github.com/pdiddy/xcsummary/internal/report"
	"github.com/pdiddy/xcsummary/internal/xcresult"
	"github.com/pdiddy/xcsummary/pkg/types"
)

func runSummarize(cmd *cobra.Command, args []string) error {
	bundle := args[0]

	cfg, err := config.Resolve(settings)
	if err != nil {
		return withCode(exitUsage, err)
	}

	if _, err := os.Stat(bundle); err != nil {
		return withCode(exitBundleMissing, fmt.Errorf("bundle not found: %s", bundle))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return summarize(ctx, cfg, bundle, xcresult.NewTool(cfg.Xcrun), cmd.OutOrStdout(), logger)
}

// summarize reads bundle through tool, writes the report to w, and records
// it in the history database when cfg asks for it.
func summarize(ctx context.Context, cfg types.Config, bundle string, tool xcresult.Tool, w io.Writer, log *zap.Logger) error {
	tag, err := report.ParseLang(cfg.Lang)
	if err != nil {
		return withCode(exitUsage, err)
	}

	if !tool.Available() {
		return withCode(exitReadFailed, fmt.Errorf("%s not found on PATH", tool.Name()))
	}

	log.Debug("reading bundle", zap.String("bundle", bundle), zap.String("xcrun", tool.Name()))
	s, warnings, err := xcresult.ReadSummary(ctx, tool, bundle)
	if err != nil {
		var toolErr *xcresult.ToolError
		if errors.As(err, &toolErr) {
			return withCode(exitToolFailed, err)
		}
		return withCode(exitReadFailed, fmt.Errorf("reading bundle %s: %w", bundle, err))
	}
	for _, msg := range warnings {
		log.Warn("summary field degraded", zap.String("bundle", bundle), zap.String("detail", msg))
	}

	if err := report.NewRenderer(tag).Encode(w, cfg.Format, cfg.Kind, bundle, s); err != nil {
		return withCode(exitUsage, err)
	}

	if cfg.Record {
		if err := record(ctx, cfg.DB, history.Entry{
			RecordedAt: time.Now(),
			Label:      cfg.Kind,
			Bundle:     bundle,
			Summary:    s,
		}); err != nil {
			log.Warn("history not updated", zap.String("db", cfg.DB), zap.Error(err))
		} else {
			log.Debug("history updated", zap.String("db", cfg.DB))
		}
	}
	return nil
}

func record(ctx context.Context, dbPath string, e history.Entry) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, e)
	return err
}
