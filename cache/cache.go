// Package cache provides a file-based byte cache used for downloaded icon
// images. Entries are keyed by source URL and expire after a TTL. Only icon
// bytes are ever cached; composed notification payloads are not.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Options configures a cache Store.
type Options struct {
	Dir string        // Directory to store cached files
	TTL time.Duration // Time-to-live for entries; 0 means entries never expire
}

// Stats tracks cache hit/miss statistics.
type Stats struct {
	Hits   int
	Misses int
	Errors int
}

// Store is a thread-safe on-disk byte cache.
type Store struct {
	dir     string
	ttl     time.Duration
	mu      sync.RWMutex
	statsMu sync.Mutex
	stats   Stats
}

// NewStore creates a cache store.
func NewStore(opts Options) *Store {
	return &Store{
		dir: opts.Dir,
		ttl: opts.TTL,
	}
}

// Get returns the path of the cached file for key when present and fresh.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.keyPath(key)
	info, err := os.Stat(p)
	if err != nil {
		s.recordMiss()
		return "", false
	}
	if s.ttl > 0 && time.Since(info.ModTime()) > s.ttl {
		s.recordMiss()
		return "", false
	}

	s.recordHit()
	return p, true
}

// Put stores data under key and returns the path of the cached file.
func (s *Store) Put(key string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		s.recordError()
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	p := s.keyPath(key)
	tmp, err := os.CreateTemp(s.dir, ".cache-*")
	if err != nil {
		s.recordError()
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		s.recordError()
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		s.recordError()
		return "", fmt.Errorf("failed to close cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		s.recordError()
		return "", fmt.Errorf("failed to commit cache file: %w", err)
	}
	return p, nil
}

// Invalidate removes a specific cache entry.
func (s *Store) Invalidate(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}

// Clear removes all cached files.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		p := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// GetStats returns cache hit/miss statistics.
func (s *Store) GetStats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}

// keyPath maps a key to a file path. The key is hashed so arbitrary URLs are
// safe as file names; the original extension is preserved so image type
// detection by extension still works downstream.
func (s *Store) keyPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	ext := path.Ext(key)
	if strings.ContainsAny(ext, "/?#%") || len(ext) > 8 {
		ext = ""
	}
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+ext)
}

func (s *Store) recordHit() {
	s.statsMu.Lock()
	s.stats.Hits++
	s.statsMu.Unlock()
}

func (s *Store) recordMiss() {
	s.statsMu.Lock()
	s.stats.Misses++
	s.statsMu.Unlock()
}

func (s *Store) recordError() {
	s.statsMu.Lock()
	s.stats.Errors++
	s.statsMu.Unlock()
}
