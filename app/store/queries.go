package store

import (
	_ "embed"
	"sort"
	"strings"
)

// The query texts are externally supplied SQL, embedded at build time. Each
// accepts ($1 username, $2 start timestamp UTC inclusive, $3 end timestamp
// UTC exclusive) and owns its column set; the pipeline discovers IP and
// timestamp columns from the result, so the texts can evolve independently.

//go:embed sql/activity.postgres.sql
var activitySQL string

//go:embed sql/submissions.postgres.sql
var submissionsSQL string

// Activity and Submissions are the two known query names.
const (
	Activity    = "activity"
	Submissions = "submissions"
)

var queries = map[string]string{
	Activity:    activitySQL,
	Submissions: submissionsSQL,
}

// QueryNames returns the known query names, sorted.
func QueryNames() []string {
	names := make([]string, 0, len(queries))
	for n := range queries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a known query.
func Known(name string) bool {
	_, ok := queries[name]
	return ok
}

func queryText(name string) (string, bool) {
	text, ok := queries[name]
	return text, ok
}

func knownNamesList() string {
	return strings.Join(QueryNames(), ", ")
}
