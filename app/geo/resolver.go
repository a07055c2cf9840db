package geo

import (
	"context"
	"net/http"
	"time"

	"canvaslogs/app/logs"
	"canvaslogs/app/settings"
)

// Resolver resolves IPs through an ordered provider chain with a
// cache-or-placeholder policy. Resolve is total: it never returns an error,
// only a possibly empty Record.
type Resolver struct {
	providers []Provider
	cache     *Cache
	timeout   time.Duration
	pause     time.Duration
	failures  int
}

// NewResolver builds the production resolver from settings: ipinfo.io first,
// ipwho.is as fallback, sharing one HTTP client.
func NewResolver(s settings.Settings) *Resolver {
	client := &http.Client{}
	return &Resolver{
		providers: []Provider{
			&IPInfoProvider{BaseURL: s.IPInfoBaseURL, Client: client},
			&IPWhoProvider{BaseURL: s.IPWhoBaseURL, Client: client},
		},
		cache:   NewCache(),
		timeout: time.Duration(s.ProviderTimeoutSeconds) * time.Second,
		pause:   time.Duration(s.CourtesyPauseMillis) * time.Millisecond,
	}
}

// NewResolverWith builds a resolver over explicit providers. Used by tests
// and by callers that need custom endpoints.
func NewResolverWith(timeout, pause time.Duration, providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		cache:     NewCache(),
		timeout:   timeout,
		pause:     pause,
	}
}

// Resolve returns the geolocation record for ip. An empty ip returns an
// empty record without touching the cache or the network. Otherwise the
// cache is consulted first, then each provider in order under its own
// timeout; the first success wins. When every provider fails, the empty
// record is cached so the IP is not retried this run.
func (r *Resolver) Resolve(ctx context.Context, ip string) Record {
	if ip == "" {
		return Record{}
	}
	if rec, ok := r.cache.Get(ip); ok {
		return rec
	}

	for _, p := range r.providers {
		pctx, cancel := context.WithTimeout(ctx, r.timeout)
		rec, err := p.Lookup(pctx, ip)
		cancel()
		if err != nil {
			logs.Logger.Debug().Str("provider", p.Name()).Str("ip", ip).Err(err).Msg("geolocation lookup failed")
			r.failures++
			continue
		}
		if r.pause > 0 {
			time.Sleep(r.pause)
		}
		return r.cache.Put(ip, rec)
	}

	// Both providers failed; cache the placeholder too.
	return r.cache.Put(ip, Record{})
}

// Failures returns the number of failed provider calls so far. Reported once
// per run as a count; individual failures only show at debug level.
func (r *Resolver) Failures() int {
	return r.failures
}

// CachedIPs returns how many distinct IPs have been resolved (or negatively
// cached) so far.
func (r *Resolver) CachedIPs() int {
	return r.cache.Len()
}
