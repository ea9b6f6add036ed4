package world

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/arthur-debert/dots/pkg/errors"
)

// Fetcher retrieves the content behind a link URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// httpFetcher fetches over HTTP with a bounded request time.
type httpFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns the production Fetcher.
func NewHTTPFetcher() Fetcher {
	return &httpFetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFetchFailed, "failed to build request for %s", url).
			WithDetail("url", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFetchFailed, "failed to fetch %s", url).
			WithDetail("url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Newf(errors.ErrFetchFailed, "fetching %s returned %s", url, resp.Status).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFetchFailed, "failed to read body of %s", url).
			WithDetail("url", url)
	}
	return string(body), nil
}
