// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists expensive search and enrichment results as a
// single JSON document on disk. The store is fail-soft: a broken cache
// file is quarantined and the pipeline continues with an empty cache
// rather than aborting a run.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// Version identifies the on-disk document format.
const Version = "1.0"

// entry is one cached result set keyed by query or lead key.
type entry struct {
	Timestamp string          `json:"timestamp"`
	Results   json.RawMessage `json:"results"`
	Count     int             `json:"count"`
}

// metadata carries document-level bookkeeping.
type metadata struct {
	TotalQueries int    `json:"total_queries"`
	LastCleanup  string `json:"last_cleanup,omitempty"`
	LastUpdated  string `json:"last_updated,omitempty"`
}

// document is the complete on-disk cache file.
type document struct {
	Version       string           `json:"version"`
	Created       string           `json:"created"`
	SearchQueries map[string]entry `json:"search_queries"`
	Metadata      metadata         `json:"metadata"`
}

// Info summarizes the cache for display, including the effective
// limits the store is enforcing.
type Info struct {
	Path         string
	Entries      int
	SizeBytes    int64
	TotalQueries int
	Created      string
	LastUpdated  string
	LastCleanup  string
	ExpiryDays   int
	MaxEntries   int
	MaxSizeBytes int64
}

// Store is a disk-backed cache shared between pipeline runs. An
// advisory file lock serializes access across processes; a mutex
// serializes access within one.
type Store struct {
	path string
	cfg  types.CacheConfig
	warn io.Writer
	lock *flock.Flock

	mu  sync.Mutex
	doc document
	now func() time.Time
}

// Open loads the cache at cfg.Path, sweeping expired entries as part
// of the load. Open never fails on cache corruption: an unreadable
// document is quarantined and the store starts empty. Warnings about
// degraded operation are written to warn.
func Open(cfg types.CacheConfig, warn io.Writer) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("cache path not configured")
	}
	if warn == nil {
		warn = io.Discard
	}

	// The lock file lives next to the cache file.
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	s := &Store{
		path: cfg.Path,
		cfg:  cfg,
		warn: warn,
		lock: flock.New(cfg.Path + ".lock"),
		now:  time.Now,
	}

	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("acquiring cache lock: %w", err)
	}
	defer s.lock.Unlock()

	s.doc = s.load()
	if s.sweepExpired() {
		if err := s.save(); err != nil {
			fmt.Fprintf(warn, "warning: persisting swept cache: %v\n", err)
		}
	}
	return s, nil
}

// Get copies the cached results for key into out and reports whether a
// live entry was found. Expired entries are purged on access.
func (s *Store) Get(key string, out any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.doc.SearchQueries[key]
	if !ok {
		return false
	}
	if s.expired(e) {
		s.update(func() {
			// Another process may have refreshed the entry since our
			// last load; only drop it if it is still expired.
			if cur, ok := s.doc.SearchQueries[key]; ok && s.expired(cur) {
				delete(s.doc.SearchQueries, key)
			}
		})
		return false
	}
	if err := json.Unmarshal(e.Results, out); err != nil {
		fmt.Fprintf(s.warn, "warning: cache entry %q unreadable, dropping: %v\n", key, err)
		s.update(func() {
			delete(s.doc.SearchQueries, key)
		})
		return false
	}
	return true
}

// Put caches results under key and persists the document, evicting the
// oldest entries first when the store exceeds its size or entry caps.
// Put reports whether the write reached disk; a false return degrades
// the cache to pass-through for this run but is never fatal.
func (s *Store) Put(key string, results any, count int) bool {
	raw, err := json.Marshal(results)
	if err != nil {
		fmt.Fprintf(s.warn, "warning: cache entry %q not serializable: %v\n", key, err)
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func() {
		s.doc.SearchQueries[key] = entry{
			Timestamp: s.now().UTC().Format(time.RFC3339),
			Results:   raw,
			Count:     count,
		}
		s.evict()
	})
}

// ClearKey removes a single entry. Removing an absent key is not an
// error.
func (s *Store) ClearKey(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func() {
		delete(s.doc.SearchQueries, key)
	})
}

// ClearAll resets the cache to an empty document.
func (s *Store) ClearAll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update(func() {
		s.doc = s.emptyDocument()
	})
}

// Stats reports the current state of the cache file.
func (s *Store) Stats() Info {
	s.mu.Lock()
	defer s.mu.Unlock()

	info := Info{
		Path:         s.path,
		Entries:      len(s.doc.SearchQueries),
		TotalQueries: s.doc.Metadata.TotalQueries,
		Created:      s.doc.Created,
		LastUpdated:  s.doc.Metadata.LastUpdated,
		LastCleanup:  s.doc.Metadata.LastCleanup,
		ExpiryDays:   int(s.cfg.ExpiryWindow().Hours() / 24),
		MaxEntries:   s.cfg.EntryCap(),
		MaxSizeBytes: s.cfg.MaxSizeBytes(),
	}
	if fi, err := os.Stat(s.path); err == nil {
		info.SizeBytes = fi.Size()
	}
	return info
}

// load reads the document from disk, quarantining a corrupt file and
// returning an empty document in its place.
func (s *Store) load() document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(s.warn, "warning: reading cache: %v, starting empty\n", err)
		}
		return s.emptyDocument()
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.quarantine(err)
		return s.emptyDocument()
	}
	if doc.SearchQueries == nil {
		doc.SearchQueries = make(map[string]entry)
	}
	return doc
}

// quarantine moves a corrupt cache file aside so the raw bytes stay
// available for inspection while the store restarts empty.
func (s *Store) quarantine(cause error) {
	backup := fmt.Sprintf("%s.corrupted.%s", s.path, s.now().UTC().Format("20060102T150405"))
	if err := os.Rename(s.path, backup); err != nil {
		fmt.Fprintf(s.warn, "warning: cache corrupt (%v) and quarantine failed: %v\n", cause, err)
		return
	}
	fmt.Fprintf(s.warn, "warning: cache corrupt (%v), moved to %s\n", cause, backup)
}

func (s *Store) emptyDocument() document {
	return document{
		Version:       Version,
		Created:       s.now().UTC().Format(time.RFC3339),
		SearchQueries: make(map[string]entry),
	}
}

func (s *Store) expired(e entry) bool {
	ts, err := time.Parse(time.RFC3339, e.Timestamp)
	if err != nil {
		return true
	}
	return s.now().Sub(ts) > s.cfg.ExpiryWindow()
}

// sweepExpired drops every expired entry and reports whether anything
// was removed.
func (s *Store) sweepExpired() bool {
	removed := false
	for key, e := range s.doc.SearchQueries {
		if s.expired(e) {
			delete(s.doc.SearchQueries, key)
			removed = true
		}
	}
	if removed {
		s.doc.Metadata.LastCleanup = s.now().UTC().Format(time.RFC3339)
	}
	return removed
}

// evict removes oldest-first until the document fits both the byte cap
// and the entry cap. Timestamps are RFC3339 in UTC, so lexicographic
// order is chronological order.
func (s *Store) evict() {
	for s.documentSize() > s.cfg.MaxSizeBytes() && len(s.doc.SearchQueries) > 0 {
		s.evictOldest()
	}
	for len(s.doc.SearchQueries) > s.cfg.EntryCap() {
		s.evictOldest()
	}
}

func (s *Store) evictOldest() {
	keys := make([]string, 0, len(s.doc.SearchQueries))
	for key := range s.doc.SearchQueries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return s.doc.SearchQueries[keys[i]].Timestamp < s.doc.SearchQueries[keys[j]].Timestamp
	})
	delete(s.doc.SearchQueries, keys[0])
}

func (s *Store) documentSize() int64 {
	data, err := json.Marshal(s.doc)
	if err != nil {
		return 0
	}
	return int64(len(data))
}

// update applies a mutation to the on-disk document atomically. The
// file lock is held from load to save and the document is re-read from
// disk before mutating, so two processes writing the same cache file
// cannot interleave a load from one with a save from the other and
// lose entries. Failures are reported as warnings; a false return
// degrades the cache for this run but is never fatal.
func (s *Store) update(mutate func()) bool {
	if err := s.lock.Lock(); err != nil {
		fmt.Fprintf(s.warn, "warning: acquiring cache lock: %v\n", err)
		return false
	}
	defer s.lock.Unlock()

	s.doc = s.load()
	mutate()
	if err := s.save(); err != nil {
		fmt.Fprintf(s.warn, "warning: persisting cache: %v\n", err)
		return false
	}
	return true
}

// save writes the document to disk via a temp file and rename. The
// total-queries count is derived from the live entries on every save.
func (s *Store) save() error {
	s.doc.Metadata.TotalQueries = len(s.doc.SearchQueries)
	s.doc.Metadata.LastUpdated = s.now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}
