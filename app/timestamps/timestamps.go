// Package timestamps handles the timezone bookkeeping of the tool: input
// timestamps are entered in a fixed display zone, the database stores UTC,
// and all output is rendered back in the display zone.
package timestamps

import (
	"fmt"
	"strings"
	"time"

	"canvaslogs/app/settings"
)

// inputFormats are the accepted input layouts, tried in order. The date-only
// layout implies midnight in the display zone.
var inputFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseError reports an input timestamp that matched none of the accepted
// layouts.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid datetime %q: use 'YYYY-MM-DD HH:MM:SS', 'YYYY-MM-DDTHH:MM:SS' or 'YYYY-MM-DD'", e.Value)
}

// DisplayLocation resolves the display timezone from settings. Falls back to
// UTC only if the configured zone name cannot be loaded.
func DisplayLocation() *time.Location {
	name := strings.TrimSpace(settings.GetEffectiveSettings().DisplayTimezone)
	if l, err := time.LoadLocation(name); err == nil {
		return l
	}
	return time.UTC
}

// ParseLocal parses a user-supplied timestamp string in the display zone.
// The returned time carries the display location, so DST offsets are applied
// per instant rather than as a fixed offset.
func ParseLocal(s string) (time.Time, error) {
	return ParseLocalIn(s, DisplayLocation())
}

// ParseLocalIn is ParseLocal with an explicit location.
func ParseLocalIn(s string, loc *time.Location) (time.Time, error) {
	ss := strings.TrimSpace(s)
	for _, layout := range inputFormats {
		if t, err := time.ParseInLocation(layout, ss, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Value: s}
}

// ToUTC converts an instant to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// ToDisplay converts an instant to display-zone wall-clock time.
func ToDisplay(t time.Time) time.Time {
	return ToDisplayIn(t, DisplayLocation())
}

// ToDisplayIn is ToDisplay with an explicit location.
func ToDisplayIn(t time.Time, loc *time.Location) time.Time {
	return t.In(loc)
}
