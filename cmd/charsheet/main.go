// Package main provides the charsheet command: it reads a D&D Beyond
// character export and writes it into a Google Sheets character sheet.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/charsheet/internal/config"
	"github.com/dgallion1/charsheet/internal/layout"
	"github.com/dgallion1/charsheet/internal/parser"
	"github.com/dgallion1/charsheet/internal/pipeline"
	"github.com/dgallion1/charsheet/internal/sheets"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	defaultSpreadsheet = "Scratch 5E Character Sheet 2024"
	defaultDocument    = "character_export.pdf"
)

var rootCmd = &cobra.Command{
	Use:   "charsheet [spreadsheet-name] [document-path]",
	Short: "Copy a D&D Beyond character export into a Google Sheets character sheet",
	Long: "charsheet decodes a D&D Beyond 5e character export, extracts its fields by layout anchors, " +
		"and writes them to the named spreadsheet in a single batched update.\n\n" +
		"Settings come from the environment (or .env): DRY_RUN, LAYOUT_FILE, WORKSHEET_NAME, " +
		"GOOGLE_CREDENTIALS_FILE, PDF_FALLBACK_PDFTOTEXT, LOG_LEVEL.",
	Args:          cobra.MaximumNArgs(2),
	RunE:          runSync,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	spreadsheet, path := defaultSpreadsheet, defaultDocument
	if len(args) > 0 {
		spreadsheet = args[0]
	}
	if len(args) > 1 {
		path = args[1]
	}
	if !parser.IsSupportedExtension(path) {
		return fmt.Errorf("unsupported document type: %s", path)
	}

	l, err := layout.Load(cfg.LayoutFile)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var writer sheets.Writer
	if cfg.DryRun {
		writer = &sheets.DryRunWriter{Out: cmd.OutOrStdout()}
	} else {
		writer, err = sheets.NewGoogleClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return err
		}
	}

	run := pipeline.NewRun(path, sheets.Target{Spreadsheet: spreadsheet, Worksheet: cfg.Worksheet})
	log.Info("starting charsheet", "run_id", run.ID, "source", path, "spreadsheet", spreadsheet, "dry_run", cfg.DryRun)

	doc, err := parser.Load(path, parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext})
	if err != nil {
		return err
	}

	if _, err := pipeline.NewRunner(l, writer, log).Process(ctx, run, doc); err != nil {
		return err
	}
	if !cfg.DryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %q (%s): %d cells\n", spreadsheet, cfg.Worksheet, run.Snapshot().Writes)
	}
	return nil
}
