// Package export runs the extraction pipeline: named query, timezone
// normalization of result timestamps, and geolocation enrichment of the IP
// column. Any failure aborts the whole extraction; there are no partial
// results.
package export

import (
	"context"
	"fmt"
	"time"

	"canvaslogs/app/geo"
	"canvaslogs/app/logs"
	"canvaslogs/app/settings"
	"canvaslogs/app/store"
	"canvaslogs/app/table"
	"canvaslogs/app/timestamps"
)

// geoColumns are the columns joined in after the IP column, in order.
var geoColumns = []string{"country", "region", "city", "isp"}

// Store is the data-store dependency of the pipeline.
type Store interface {
	Query(ctx context.Context, name, username string, startUTC, endUTC time.Time) (*table.Table, error)
}

// Resolver is the geolocation dependency of the pipeline.
type Resolver interface {
	Resolve(ctx context.Context, ip string) geo.Record
}

// Exporter ties the store and resolver together for one run.
type Exporter struct {
	store    Store
	resolver Resolver
	settings settings.Settings
	display  *time.Location
}

// New builds an exporter. The display location is resolved once up front so
// every extraction of the run renders in the same zone.
func New(st Store, res Resolver, s settings.Settings) *Exporter {
	loc, err := time.LoadLocation(s.DisplayTimezone)
	if err != nil {
		loc = time.UTC
	}
	return &Exporter{store: st, resolver: res, settings: s, display: loc}
}

// Extract runs the named query for one user and window and returns the
// enriched table. The query name is validated against the known set before
// any database work; the window was validated at construction.
func (e *Exporter) Extract(ctx context.Context, queryName, username string, w timestamps.Window) (*table.Table, error) {
	if !store.Known(queryName) {
		return nil, &store.UnknownQueryError{Name: queryName}
	}

	t, err := e.store.Query(ctx, queryName, username, w.StartUTC(), w.EndUTC())
	if err != nil {
		return nil, err
	}

	e.localizeTimestamps(t)

	if err := e.joinGeolocation(ctx, t); err != nil {
		return nil, err
	}

	logs.Logger.Info().Str("query", queryName).Int("rows", t.Len()).Msg("extraction complete")
	return t, nil
}

// localizeTimestamps converts every timestamp cell from UTC to display-zone
// wall-clock time. The database returns UTC instants; output files carry
// naive local times.
func (e *Exporter) localizeTimestamps(t *table.Table) {
	for _, c := range t.TimeColumns() {
		for _, row := range t.Rows {
			if ts, ok := row[c].(time.Time); ok {
				row[c] = timestamps.ToDisplayIn(ts, e.display)
			}
		}
	}
}

// joinGeolocation finds the IP column (if any), resolves each distinct IP
// exactly once, and inserts the four geolocation columns immediately after
// the IP column. Rows sharing an IP share the resolved record.
func (e *Exporter) joinGeolocation(ctx context.Context, t *table.Table) error {
	ipCol := table.FindColumn(t.Columns, e.settings.ColumnRoles.IP)
	if ipCol < 0 {
		return nil
	}

	ips := t.DistinctStrings(ipCol)
	logs.Logger.Info().Int("unique_ips", len(ips)).Msg("looking up IP locations")

	located := make(map[string]geo.Record, len(ips))
	for i, ip := range ips {
		located[ip] = e.resolver.Resolve(ctx, ip)
		if (i+1)%10 == 0 {
			logs.Logger.Info().Int("done", i+1).Int("total", len(ips)).Msg("IPs processed")
		}
	}

	vals := make([][]any, t.Len())
	for i, row := range t.Rows {
		ip := table.CellString(row[ipCol])
		rec, ok := located[ip]
		if ip == "" || !ok {
			vals[i] = []any{nil, nil, nil, nil}
			continue
		}
		vals[i] = []any{nullable(rec.Country), nullable(rec.Region), nullable(rec.City), nullable(rec.ISP)}
	}
	if err := t.InsertColumns(ipCol+1, geoColumns, vals); err != nil {
		return fmt.Errorf("joining geolocation columns: %w", err)
	}
	return nil
}

// nullable maps empty provider fields to SQL-ish nulls so the writers emit
// blank cells instead of empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
