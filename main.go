// canvaslogs exports one user's Canvas activity logs and assignment
// submissions from PostgreSQL into spreadsheet and Word reports, enriching
// submission IPs with approximate geolocation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"canvaslogs/app/config"
	"canvaslogs/app/export"
	"canvaslogs/app/geo"
	"canvaslogs/app/logs"
	"canvaslogs/app/report"
	"canvaslogs/app/settings"
	"canvaslogs/app/store"
	"canvaslogs/app/timestamps"
)

func main() {
	logs.Init(os.Getenv("CANVASLOGS_LOG_LEVEL"))
	logs.WithRunID(uuid.NewString())

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the whole invocation, separated for cleaner error handling:
// every fatal error bubbles here and becomes one stderr line and exit 1.
func run(args []string) error {
	fs := flag.NewFlagSet("canvaslogs", flag.ExitOnError)
	user := fs.String("user", "", "Canvas login/unique_id to filter (required)")
	start := fs.String("start", "", "start timestamp, display-zone local time (required)")
	end := fs.String("end", "", "end timestamp, display-zone local time, exclusive (required)")
	outputDir := fs.String("output-dir", "", "output directory (defaults to the user id)")
	fs.Usage = func() { printUsage(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *start == "" || *end == "" {
		fs.Usage()
		return fmt.Errorf("--user, --start and --end are required")
	}

	s := settings.GetEffectiveSettings()

	// Input parsing fails before any network or database work.
	startTS, err := timestamps.ParseLocal(*start)
	if err != nil {
		return err
	}
	endTS, err := timestamps.ParseLocal(*end)
	if err != nil {
		return err
	}
	window, err := timestamps.NewWindow(startTS, endTS)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	dir := *outputDir
	if dir == "" {
		dir = *user
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	base := filepath.Base(filepath.Clean(dir))

	resolver := geo.NewResolver(s)
	exporter := export.New(st, resolver, s)
	summary := report.NewSummaryWriter(s)

	for _, queryName := range store.QueryNames() {
		logs.Logger.Info().Str("query", queryName).Msg("running query")

		t, err := exporter.Extract(ctx, queryName, *user, window)
		if err != nil {
			return err
		}

		out := filepath.Join(dir, fmt.Sprintf("%s-%s.xlsx", base, queryName))
		if err := report.WriteSpreadsheet(t, out, capitalize(queryName)); err != nil {
			return err
		}
		logs.Logger.Info().Str("file", out).Int("rows", t.Len()).Msg("wrote spreadsheet")

		if queryName == store.Submissions {
			docxPath := filepath.Join(dir, base+"-summary.docx")
			if err := summary.WriteSummary(t, *user, docxPath); err != nil {
				return err
			}
		}
	}

	if n := resolver.Failures(); n > 0 {
		logs.Logger.Warn().Int("failed_lookups", n).Msg("some geolocation lookups failed")
	}
	logs.Logger.Info().Str("dir", dir).Msg("completed successfully")
	return nil
}

// capitalize upper-cases the first byte, for sheet titles ("activity" ->
// "Activity"). Query names are ASCII.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, `canvaslogs - export Canvas activity logs and submissions from PostgreSQL

Usage:
  canvaslogs --user <id> --start "2025-08-26 00:00:00" --end "2025-10-31 00:00:00" [--output-dir results]

Writes <dir>-activity.xlsx and <dir>-submissions.xlsx into the output
directory, plus <dir>-summary.docx when the Word summary is enabled.

Timestamps are interpreted in the display timezone (default
America/New_York); accepted formats are 'YYYY-MM-DD HH:MM:SS',
'YYYY-MM-DDTHH:MM:SS' and 'YYYY-MM-DD'.

Environment (PostgreSQL):
  POSTGRES_DSN          full DSN string, or the standard libpq variables:
  PGHOST, PGPORT, PGDATABASE, PGUSER, PGPASSWORD, PGSSLMODE
  (a .env file in the working directory is also read)

Other environment:
  CANVASLOGS_LOG_LEVEL  trace|debug|info|warn|error (default info)
  CANVASLOGS_SETTINGS   path to settings.yaml overriding built-in defaults

Flags:`)
	fs.PrintDefaults()
}
