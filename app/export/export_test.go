package export

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"canvaslogs/app/geo"
	"canvaslogs/app/settings"
	"canvaslogs/app/store"
	"canvaslogs/app/table"
	"canvaslogs/app/timestamps"
)

// fakeStore returns a canned table and records how it was called.
type fakeStore struct {
	t     *table.Table
	err   error
	calls int
	name  string
	user  string
	start time.Time
	end   time.Time
}

func (f *fakeStore) Query(_ context.Context, name, username string, startUTC, endUTC time.Time) (*table.Table, error) {
	f.calls++
	f.name = name
	f.user = username
	f.start = startUTC
	f.end = endUTC
	if f.err != nil {
		return nil, f.err
	}
	return f.t, nil
}

// stubResolver returns a fixed record and counts distinct resolutions.
type stubResolver struct {
	rec   geo.Record
	calls int
}

var _ Resolver = (*stubResolver)(nil)

func (s *stubResolver) Resolve(_ context.Context, ip string) geo.Record {
	s.calls++
	if ip == "" {
		return geo.Record{}
	}
	return s.rec
}

func mustWindow(t *testing.T) timestamps.Window {
	t.Helper()
	w, err := timestamps.NewWindow(
		time.Date(2025, 8, 26, 4, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 31, 4, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestExtractRejectsUnknownQueryBeforeStoreCall(t *testing.T) {
	fs := &fakeStore{t: table.New(nil)}
	e := New(fs, &stubResolver{}, settings.Defaults())

	_, err := e.Extract(context.Background(), "payroll", "jdoe", mustWindow(t))
	var uq *store.UnknownQueryError
	if !errors.As(err, &uq) {
		t.Fatalf("expected UnknownQueryError, got %v", err)
	}
	if fs.calls != 0 {
		t.Errorf("store was called %d times for an unknown query", fs.calls)
	}
}

func TestExtractPropagatesStoreFailure(t *testing.T) {
	want := errors.New("connection refused")
	fs := &fakeStore{err: want}
	e := New(fs, &stubResolver{}, settings.Defaults())

	_, err := e.Extract(context.Background(), store.Activity, "jdoe", mustWindow(t))
	if !errors.Is(err, want) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestExtractEndToEnd(t *testing.T) {
	// Two submissions rows sharing one IP: the resolver must run once, and
	// both rows must carry the resolved city.
	submittedUTC := time.Date(2025, 9, 10, 16, 0, 0, 0, time.UTC)
	src := table.New([]string{"course_name", "assignment", "submitted_at", "ip_at_submit"})
	if err := src.Append([]any{"Biology 101", "Lab Report 1", submittedUTC, "203.0.113.5"}); err != nil {
		t.Fatal(err)
	}
	if err := src.Append([]any{"Biology 101", "Lab Report 2", submittedUTC.Add(time.Hour), "203.0.113.5"}); err != nil {
		t.Fatal(err)
	}

	fs := &fakeStore{t: src}
	res := &stubResolver{rec: geo.Record{Country: "US", Region: "Illinois", City: "Springfield", ISP: "ExampleISP"}}
	e := New(fs, res, settings.Defaults())

	w := mustWindow(t)
	got, err := e.Extract(context.Background(), store.Submissions, "jdoe", w)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if fs.name != store.Submissions || fs.user != "jdoe" {
		t.Errorf("store called with (%q, %q)", fs.name, fs.user)
	}
	if !fs.start.Equal(w.StartUTC()) || !fs.end.Equal(w.EndUTC()) {
		t.Errorf("store called with bounds %v .. %v, want %v .. %v", fs.start, fs.end, w.StartUTC(), w.EndUTC())
	}
	if got.Len() != 2 {
		t.Fatalf("row count = %d, want 2", got.Len())
	}
	if res.calls != 1 {
		t.Errorf("resolver called %d times for 1 distinct IP", res.calls)
	}

	wantCols := []string{"course_name", "assignment", "submitted_at", "ip_at_submit", "country", "region", "city", "isp"}
	if !reflect.DeepEqual(got.Columns, wantCols) {
		t.Fatalf("columns = %v, want %v", got.Columns, wantCols)
	}

	cityCol := table.FindColumn(got.Columns, []string{"city"})
	for r := 0; r < got.Len(); r++ {
		if city := got.Cell(r, cityCol); city != "Springfield" {
			t.Errorf("row %d city = %v, want Springfield", r, city)
		}
	}

	// 16:00 UTC on 2025-09-10 is 12:00 in America/New_York (EDT).
	tsCol := table.FindColumn(got.Columns, []string{"submitted_at"})
	localized, ok := got.Cell(0, tsCol).(time.Time)
	if !ok {
		t.Fatalf("submitted_at cell is %T, want time.Time", got.Cell(0, tsCol))
	}
	if wall := localized.Format("15:04"); wall != "12:00" {
		t.Errorf("localized wall clock = %s, want 12:00", wall)
	}
}

func TestExtractWithoutIPColumn(t *testing.T) {
	src := table.New([]string{"url", "created_at"})
	_ = src.Append([]any{"/courses/1", time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)})

	fs := &fakeStore{t: src}
	res := &stubResolver{rec: geo.Record{City: "should not appear"}}
	e := New(fs, res, settings.Defaults())

	got, err := e.Extract(context.Background(), store.Activity, "jdoe", mustWindow(t))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.calls != 0 {
		t.Errorf("resolver called with no IP column present")
	}
	if !reflect.DeepEqual(got.Columns, []string{"url", "created_at"}) {
		t.Errorf("columns changed: %v", got.Columns)
	}
}

func TestExtractNullIPsSkipped(t *testing.T) {
	src := table.New([]string{"assignment", "ip_at_submit"})
	_ = src.Append([]any{"HW1", nil})
	_ = src.Append([]any{"HW2", "203.0.113.9"})

	fs := &fakeStore{t: src}
	res := &stubResolver{rec: geo.Record{City: "Springfield"}}
	e := New(fs, res, settings.Defaults())

	got, err := e.Extract(context.Background(), store.Submissions, "jdoe", mustWindow(t))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if res.calls != 1 {
		t.Errorf("resolver calls = %d, want 1 (null IPs skipped)", res.calls)
	}
	cityCol := table.FindColumn(got.Columns, []string{"city"})
	if v := got.Cell(0, cityCol); v != nil {
		t.Errorf("null-IP row got city %v, want nil", v)
	}
	if v := got.Cell(1, cityCol); v != "Springfield" {
		t.Errorf("resolved row city = %v, want Springfield", v)
	}
}
