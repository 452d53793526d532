package icon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/questdeck/notify-core/cache"
)

// failingTransport fails the test if any request goes out.
type failingTransport struct {
	t *testing.T
}

func (f *failingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.t.Fatalf("unexpected network request to %s", req.URL)
	return nil, nil
}

func TestDownloader_Fetch_NonHTTPURLIsNoOp(t *testing.T) {
	d := NewDownloader(DownloaderOptions{
		TempDir: t.TempDir(),
		Client:  &http.Client{Transport: &failingTransport{t: t}},
	})

	tests := []string{"", "not-a-url", "ftp://example.com/icon.png", "file:///etc/passwd"}
	for _, url := range tests {
		h, err := d.Fetch(context.Background(), url)
		require.NoError(t, err, "url %q", url)
		assert.True(t, h.IsNone(), "url %q", url)
	}
}

func TestDownloader_Fetch_StreamsToTempFile(t *testing.T) {
	payload := []byte("\x89PNG fake image bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	tempDir := t.TempDir()
	d := NewDownloader(DownloaderOptions{TempDir: tempDir})

	h, err := d.Fetch(context.Background(), server.URL+"/icons/achievement.png")

	require.NoError(t, err)
	require.Equal(t, KindFile, h.Kind)
	assert.Equal(t, "achievement.png", filepath.Base(h.Path))
	assert.Equal(t, tempDir, filepath.Dir(h.Path))

	data, err := os.ReadFile(h.Path)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestDownloader_Fetch_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := NewDownloader(DownloaderOptions{TempDir: t.TempDir()})

	h, err := d.Fetch(context.Background(), server.URL+"/missing.png")

	require.ErrorIs(t, err, ErrBadStatus)
	assert.True(t, h.IsNone())
}

func TestDownloader_Fetch_CacheShortCircuitsRepeatURLs(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte("icon bytes"))
	}))
	defer server.Close()

	store := cache.NewStore(cache.Options{Dir: t.TempDir(), TTL: time.Hour})
	d := NewDownloader(DownloaderOptions{TempDir: t.TempDir(), Cache: store})

	url := server.URL + "/icons/game.png"
	first, err := d.Fetch(context.Background(), url)
	require.NoError(t, err)

	second, err := d.Fetch(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, KindFile, first.Kind)
	assert.Equal(t, KindFile, second.Kind)

	data, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	assert.Equal(t, []byte("icon bytes"), data)
}

func TestDownloader_Fetch_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := NewDownloader(DownloaderOptions{
		TempDir:         t.TempDir(),
		BreakerFailures: 2,
		RateLimit:       rate.Inf,
	})

	url := server.URL + "/flaky.png"
	for i := 0; i < 2; i++ {
		_, err := d.Fetch(context.Background(), url)
		require.Error(t, err)
	}

	// Breaker is now open: the next fetch fails without reaching the server.
	_, err := d.Fetch(context.Background(), url)
	require.Error(t, err)
	assert.Equal(t, 2, requests)
}
