// Package scraper fetches the published listing page and price workbook.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// FetcherConfig bounds outbound requests against the upstream site.
type FetcherConfig struct {
	RateLimiter    *rate.Limiter
	RequestTimeout time.Duration
}

// DefaultFetcherConfig returns a config with the given request rate and a
// 30 second per-request timeout.
func DefaultFetcherConfig(requestsPerSecond float64) *FetcherConfig {
	return &FetcherConfig{
		RateLimiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		RequestTimeout: 30 * time.Second,
	}
}

// Fetcher performs the two requests a collection run needs: the listing
// page and the workbook file.
type Fetcher struct {
	config *FetcherConfig
	client *http.Client
	logger *logrus.Logger
}

// NewFetcher creates a fetcher with the given config and logger.
func NewFetcher(config *FetcherConfig, logger *logrus.Logger) *Fetcher {
	return &Fetcher{
		config: config,
		client: &http.Client{Timeout: config.RequestTimeout},
		logger: logger,
	}
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	if err := f.config.RateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	return resp, nil
}

// GetPage fetches a URL and returns its body as text.
func (f *Fetcher) GetPage(ctx context.Context, url string) (string, error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), nil
}

// DownloadTemp downloads a URL into a temporary file and returns its path
// together with a cleanup func. The caller must defer cleanup so the file
// is released on every exit path.
func (f *Fetcher) DownloadTemp(ctx context.Context, url string) (string, func(), error) {
	resp, err := f.get(ctx, url)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp("", "yasai-*.xlsx")
	if err != nil {
		return "", nil, fmt.Errorf("create temp workbook: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			f.logger.WithError(err).Warn("Failed to remove temp workbook")
		}
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("download %s: %w", url, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp workbook: %w", err)
	}

	f.logger.WithFields(logrus.Fields{
		"url":  url,
		"path": tmp.Name(),
	}).Info("Downloaded workbook")

	return tmp.Name(), cleanup, nil
}
