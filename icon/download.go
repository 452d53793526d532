package icon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/questdeck/notify-core/cache"
	"github.com/questdeck/notify-core/logutil"
	"github.com/questdeck/notify-core/urlutil"
)

// Downloader defaults.
const (
	defaultFetchTimeout = 10 * time.Second
	defaultRateLimit    = rate.Limit(2) // downloads per second
	defaultRateBurst    = 5
)

// ErrBadStatus is returned when the remote server answers with a non-2xx
// status code.
var ErrBadStatus = errors.New("unexpected HTTP status")

// DownloaderOptions configures a Downloader.
type DownloaderOptions struct {
	// TempDir receives downloaded icon files. Defaults to os.TempDir().
	TempDir string

	// Cache short-circuits repeat fetches of the same URL. Optional.
	Cache *cache.Store

	// Client is the HTTP client used for fetches. Defaults to a client
	// with a 10 second timeout.
	Client *http.Client

	// RateLimit and RateBurst pace outgoing fetches. Zero values use the
	// package defaults.
	RateLimit rate.Limit
	RateBurst int

	// BreakerFailures is the consecutive-failure count that opens the
	// circuit breaker. Values below 1 use the default of 5.
	BreakerFailures int
}

// Downloader fetches remote icon images to disk. Fetches are paced by a rate
// limiter and guarded by a circuit breaker so a misbehaving icon CDN cannot
// stall every notification in flight.
type Downloader struct {
	tempDir string
	client  *http.Client
	store   *cache.Store
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewDownloader creates a Downloader.
func NewDownloader(opts DownloaderOptions) *Downloader {
	tempDir := opts.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	limit := opts.RateLimit
	if limit == 0 {
		limit = defaultRateLimit
	}
	burst := opts.RateBurst
	if burst == 0 {
		burst = defaultRateBurst
	}
	failures := opts.BreakerFailures
	if failures < 1 {
		failures = 5
	}

	settings := gobreaker.Settings{
		Name:    "icon-download",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(failures)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logutil.Warn("icon download breaker state changed", "from", from.String(), "to", to.String())
		},
	}

	return &Downloader{
		tempDir: tempDir,
		client:  client,
		store:   opts.Cache,
		limiter: rate.NewLimiter(limit, burst),
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Fetch streams the image at rawURL into a file under the temp directory and
// returns a handle to it. An empty or non-HTTP(S) URL is not an error: the
// result is NoIcon with no network I/O at all. Network and stream failures
// are returned to the caller, which is expected to substitute a fallback
// icon rather than abort the notification.
//
// The file is named after the URL's final path segment. Two distinct URLs
// sharing a final segment can collide; that risk is accepted.
func (d *Downloader) Fetch(ctx context.Context, rawURL string) (Handle, error) {
	if rawURL == "" {
		return NoIcon, nil
	}
	parsed, err := urlutil.Parse(rawURL)
	if err != nil {
		logutil.Debug("skipping icon fetch for non-HTTP URL", "url", rawURL)
		return NoIcon, nil
	}

	if d.store != nil {
		if cached, ok := d.store.Get(rawURL); ok {
			return FromFile(cached), nil
		}
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return NoIcon, fmt.Errorf("icon fetch canceled: %w", err)
	}

	name := path.Base(parsed.Path)
	if name == "" || name == "/" || name == "." {
		name = "icon"
	}
	outputPath := filepath.Join(d.tempDir, name)

	result, err := d.breaker.Execute(func() (interface{}, error) {
		return outputPath, d.download(ctx, rawURL, outputPath)
	})
	if err != nil {
		return NoIcon, err
	}

	if d.store != nil {
		d.cachePut(rawURL, result.(string))
	}
	return FromFile(result.(string)), nil
}

// download streams the response body to outputPath. Completion is signaled
// only after the file is flushed and closed; a partial file is removed on
// any stream error.
func (d *Downloader) download(ctx context.Context, rawURL, outputPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build icon request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("icon fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create icon file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(outputPath)
		return fmt.Errorf("icon stream failed: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(outputPath)
		return fmt.Errorf("icon flush failed: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(outputPath)
		return fmt.Errorf("icon close failed: %w", err)
	}
	return nil
}

// cachePut copies a downloaded file into the cache. Best effort only.
func (d *Downloader) cachePut(key, filePath string) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		logutil.Debug("icon cache read-back failed", "path", filePath, "error", err)
		return
	}
	if _, err := d.store.Put(key, data); err != nil {
		logutil.Debug("icon cache write failed", "key", key, "error", err)
	}
}
