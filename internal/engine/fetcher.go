package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/tartampluch/birthday-assistant/internal/config"
)

// VCardFetcher downloads a remote vCard stream for Generator.Import.
// Implementations must honor ctx and return a body the caller closes.
type VCardFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher downloads vCards over http(s) with optional basic auth.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with config.HTTPTimeout applied.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: config.HTTPTimeout},
	}
}

// Fetch GETs targetURL and returns the response body.
//
// Only http and https URLs are accepted. Credentials, when given, are sent
// as HTTP basic auth. Any status other than 200 is an error, and the body
// is capped at config.MaxHTTPResponseSize so a runaway server cannot
// exhaust memory during an import.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	// 1. Validate the URL before anything touches the network.
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, sanitizeLocation(targetURL)),
	)
	log.Debug(config.MsgDownloadStart)

	// 2. Build the request with our User-Agent and optional basic auth.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	// 3. Execute and check the status.
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgBadStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %s", config.ErrBadStatus, resp.Status)
	}

	log.Info(config.MsgDownloading, slog.Int64(config.LogKeyLength, resp.ContentLength))

	// 4. Hand back a size-limited body.
	return cappedBody{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// cappedBody reads through the limit but closes the real body.
type cappedBody struct {
	io.Reader
	io.Closer
}
