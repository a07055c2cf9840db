package settings

// ColumnRoles maps a logical column role to the candidate column names that
// fill it. Matching is case-insensitive; the first candidate present in a
// result set wins.
type ColumnRoles struct {
	// IP is the column carrying the client IP address to geolocate.
	IP []string `yaml:"ip" json:"ip"`
	// Course groups submission rows in the summary document.
	Course []string `yaml:"course" json:"course"`
	// Assignment names the submitted assignment in the summary document.
	Assignment []string `yaml:"assignment" json:"assignment"`
	// SubmittedAt orders submission rows in the summary document.
	SubmittedAt []string `yaml:"submitted_at" json:"submitted_at"`
}

// Settings holds tool settings that can be overridden by the user.
type Settings struct {
	// Timezone used for parsing input timestamps and rendering output ones.
	// Any IANA TZ name; the database itself always stores UTC.
	DisplayTimezone string `yaml:"display_timezone" json:"display_timezone"`
	// Geolocation provider endpoints. Overridable mostly for testing and
	// for self-hosted mirrors.
	IPInfoBaseURL string `yaml:"ipinfo_base_url" json:"ipinfo_base_url"`
	IPWhoBaseURL  string `yaml:"ipwho_base_url" json:"ipwho_base_url"`
	// Per-provider HTTP timeout in seconds.
	ProviderTimeoutSeconds int `yaml:"provider_timeout_seconds" json:"provider_timeout_seconds"`
	// Pause after each successful provider call, in milliseconds. Courtesy
	// throttling against free-tier rate limits, not adaptive.
	CourtesyPauseMillis int `yaml:"courtesy_pause_millis" json:"courtesy_pause_millis"`
	// SummaryDocument toggles the Word summary written next to the
	// submissions spreadsheet.
	SummaryDocument bool `yaml:"summary_document" json:"summary_document"`
	// ColumnRoles configures which result columns play which role.
	ColumnRoles ColumnRoles `yaml:"column_roles" json:"column_roles"`
}

// defaultSettings defines the built-in defaults. The column candidates match
// the names produced by the bundled activity and submissions queries.
var defaultSettings = Settings{
	DisplayTimezone:        "America/New_York",
	IPInfoBaseURL:          "https://ipinfo.io",
	IPWhoBaseURL:           "https://ipwho.is",
	ProviderTimeoutSeconds: 5,
	CourtesyPauseMillis:    100,
	SummaryDocument:        true,
	ColumnRoles: ColumnRoles{
		IP:          []string{"ip", "remote_ip", "ip_at_submit"},
		Course:      []string{"course_name", "course"},
		Assignment:  []string{"assignment", "assignment_name", "title"},
		SubmittedAt: []string{"timestamp_est", "submitted_at"},
	},
}
