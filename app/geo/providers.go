package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// IPInfoProvider queries ipinfo.io. Free tier, no API key, responds with a
// flat JSON object; the ISP hides in "org" (e.g. "AS15169 Google LLC").
type IPInfoProvider struct {
	BaseURL string
	Client  *http.Client
}

func (p *IPInfoProvider) Name() string { return "ipinfo.io" }

type ipInfoResponse struct {
	Country string `json:"country"`
	Region  string `json:"region"`
	City    string `json:"city"`
	Org     string `json:"org"`
}

// Lookup fetches {base}/{ip}/json and maps the provider fields onto a Record.
func (p *IPInfoProvider) Lookup(ctx context.Context, ip string) (Record, error) {
	var body ipInfoResponse
	if err := getJSON(ctx, p.Client, p.BaseURL+"/"+url.PathEscape(ip)+"/json", &body); err != nil {
		return Record{}, err
	}
	return Record{
		Country: body.Country,
		Region:  body.Region,
		City:    body.City,
		ISP:     body.Org,
	}, nil
}

// IPWhoProvider queries ipwho.is. Also keyless, but with a different shape:
// a top-level success flag, a country code instead of a name, and the ISP
// nested under "connection".
type IPWhoProvider struct {
	BaseURL string
	Client  *http.Client
}

func (p *IPWhoProvider) Name() string { return "ipwho.is" }

type ipWhoResponse struct {
	Success     bool   `json:"success"`
	CountryCode string `json:"country_code"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Connection  struct {
		ISP string `json:"isp"`
		Org string `json:"org"`
	} `json:"connection"`
}

// Lookup fetches {base}/{ip}. ipwho.is reports lookup failures inside a 200
// response, so the success flag is checked explicitly.
func (p *IPWhoProvider) Lookup(ctx context.Context, ip string) (Record, error) {
	var body ipWhoResponse
	if err := getJSON(ctx, p.Client, p.BaseURL+"/"+url.PathEscape(ip), &body); err != nil {
		return Record{}, err
	}
	if !body.Success {
		return Record{}, fmt.Errorf("ipwho.is reported failure for %s", ip)
	}
	isp := body.Connection.ISP
	if isp == "" {
		isp = body.Connection.Org
	}
	return Record{
		Country: body.CountryCode,
		Region:  body.Region,
		City:    body.City,
		ISP:     isp,
	}, nil
}

// getJSON performs a GET and decodes a JSON body, treating any non-200
// status as an error.
func getJSON(ctx context.Context, client *http.Client, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, u)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed response from %s: %w", u, err)
	}
	return nil
}
