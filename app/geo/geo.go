// Package geo resolves IP addresses to approximate locations using public
// HTTP geolocation services, with a provider fallback chain and a
// process-lifetime cache.
package geo

import "context"

// Record is the geolocation result for one IP. Empty fields are legitimate
// terminal values, not errors: a fully empty Record is what a failed or
// unresolvable lookup yields.
type Record struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
	ISP     string `json:"isp"`
}

// IsZero reports whether no field of the record is populated.
func (r Record) IsZero() bool {
	return r == Record{}
}

// Provider is one upstream geolocation service. Lookup returns an error for
// any non-success outcome (transport failure, non-200 status, malformed body,
// provider-reported failure); the error drives the fallback loop and is never
// surfaced past the resolver.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, ip string) (Record, error)
}
