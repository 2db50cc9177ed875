package chrome

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Version is the subset of /json/version we report.
type Version struct {
	Browser         string `json:"Browser"`
	ProtocolVersion string `json:"Protocol-Version"`
	WebSocketURL    string `json:"webSocketDebuggerUrl"`
}

// Probe checks that a remote DevTools endpoint answers.
type Probe struct {
	httpClient *resty.Client
}

// NewProbe builds a Probe for the DevTools endpoint at remoteURL. A ws:// URL is
// probed over http.
func NewProbe(remoteURL string) *Probe {
	base := strings.TrimSuffix(remoteURL, "/")
	base = strings.Replace(base, "ws://", "http://", 1)
	base = strings.Replace(base, "wss://", "https://", 1)
	if i := strings.Index(base, "/devtools/"); i >= 0 {
		base = base[:i]
	}

	client := resty.New().
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetTimeout(5 * time.Second)

	return &Probe{httpClient: client}
}

// Check fetches the browser version.
func (p *Probe) Check(ctx context.Context) (*Version, error) {
	result := new(Version)

	resp, err := p.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get("/json/version")
	if err != nil {
		return nil, fmt.Errorf("probe chrome: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("chrome devtools error: status=%d", resp.StatusCode())
	}
	if result.Browser == "" {
		return nil, fmt.Errorf("chrome devtools returned no browser version")
	}
	return result, nil
}
