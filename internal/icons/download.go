package icons

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"
)

// DownloadReport lists the outcome of a download pass.
type DownloadReport struct {
	Downloaded []string
	Failed     []string
}

// Downloader fetches the icon set one file at a time.
type Downloader struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewDownloader creates a downloader for the icon directory at baseURL.
// rps caps the number of requests per second; zero or less disables pacing.
func NewDownloader(baseURL string, rps float64, logger *slog.Logger) *Downloader {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Downloader{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger.With("component", "icon-downloader"),
	}
}

// Download fetches names into dir/svg. Failures of individual files are
// logged and recorded in the report; only a failure to create the directory
// or a cancelled context aborts the pass.
func (d *Downloader) Download(ctx context.Context, dir string, names []string) (*DownloadReport, error) {
	svgDir := filepath.Join(dir, "svg")
	if err := os.MkdirAll(svgDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create icon directory: %w", err)
	}

	d.logger.Info("downloading icons", "count", len(names), "dir", svgDir, "source", d.baseURL)

	report := &DownloadReport{}
	for _, name := range names {
		if err := d.limiter.Wait(ctx); err != nil {
			return report, fmt.Errorf("rate limit wait canceled: %w", err)
		}

		if err := d.fetch(ctx, name, filepath.Join(svgDir, name)); err != nil {
			d.logger.Error("failed to download icon", "icon", name, "error", err)
			report.Failed = append(report.Failed, name)
			continue
		}

		d.logger.Info("downloaded icon", "icon", name)
		report.Downloaded = append(report.Downloaded, name)
	}

	d.logger.Info("icon download finished",
		"downloaded", len(report.Downloaded),
		"failed", len(report.Failed),
	)

	return report, nil
}

func (d *Downloader) fetch(ctx context.Context, name, dest string) error {
	u, err := url.JoinPath(strings.TrimSuffix(d.baseURL, "/"), name)
	if err != nil {
		return fmt.Errorf("failed to build URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	// A partial transfer never replaces dest.
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+name+".*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
