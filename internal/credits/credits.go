// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credits tracks per-API call budgets across pipeline runs so
// a batch never burns through a paid quota unnoticed.
package credits

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

	"github.com/Up14/Lead-Finder/pkg/types"
)

// Account is the tracked state for one API.
type Account struct {
	CallsMade      int    `json:"calls_made"`
	CallsRemaining int    `json:"calls_remaining"`
	QuotaLimit     int    `json:"quota_limit"`
	LastUpdated    string `json:"last_updated,omitempty"`
}

// Ledger is a disk-backed record of API usage. Like the cache it is
// fail-soft: a broken ledger file resets to empty with a warning
// rather than blocking a run.
type Ledger struct {
	path string
	cfg  types.CreditsConfig
	warn io.Writer

	mu       sync.Mutex
	accounts map[string]Account
	now      func() time.Time
}

// Open loads the ledger at cfg.Path, creating an empty one when the
// file does not exist yet.
func Open(cfg types.CreditsConfig, warn io.Writer) (*Ledger, error) {
	if cfg.Path == "" {
		return nil, errors.New("credits path not configured")
	}
	if warn == nil {
		warn = io.Discard
	}

	l := &Ledger{
		path:     cfg.Path,
		cfg:      cfg,
		warn:     warn,
		accounts: make(map[string]Account),
		now:      time.Now,
	}
	l.load()
	return l, nil
}

// Initialize ensures an account exists for each named API, assigning
// the default quota to new ones. Existing accounts are untouched.
func (l *Ledger) Initialize(apis ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	changed := false
	for _, api := range apis {
		if _, ok := l.accounts[api]; ok {
			continue
		}
		quota := l.cfg.DefaultQuota
		if quota <= 0 {
			quota = 100
		}
		l.accounts[api] = Account{
			CallsRemaining: quota,
			QuotaLimit:     quota,
			LastUpdated:    l.now().UTC().Format(time.RFC3339),
		}
		changed = true
	}
	if changed {
		l.persist()
	}
}

// CanCall reports whether api has remaining credit. Unknown APIs are
// callable; tracking starts when they are initialized or recorded.
func (l *Ledger) CanCall(api string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[api]
	if !ok {
		return true
	}
	return acct.CallsRemaining > 0
}

// Record books n calls against api, clamping the remaining balance at
// zero.
func (l *Ledger) Record(api string, n int) {
	if n <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acct := l.accounts[api]
	acct.CallsMade += n
	acct.CallsRemaining -= n
	if acct.CallsRemaining < 0 {
		acct.CallsRemaining = 0
	}
	acct.LastUpdated = l.now().UTC().Format(time.RFC3339)
	l.accounts[api] = acct
	l.persist()
}

// UpdateQuota sets a new quota for api, preserving calls already made
// and recomputing the remaining balance.
func (l *Ledger) UpdateQuota(api string, quota int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct := l.accounts[api]
	acct.QuotaLimit = quota
	acct.CallsRemaining = quota - acct.CallsMade
	if acct.CallsRemaining < 0 {
		acct.CallsRemaining = 0
	}
	acct.LastUpdated = l.now().UTC().Format(time.RFC3339)
	l.accounts[api] = acct
	l.persist()
}

// Reset restores api to a full balance.
func (l *Ledger) Reset(api string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[api]
	if !ok {
		return
	}
	acct.CallsMade = 0
	acct.CallsRemaining = acct.QuotaLimit
	acct.LastUpdated = l.now().UTC().Format(time.RFC3339)
	l.accounts[api] = acct
	l.persist()
}

// Info returns the account for api and whether it is tracked.
func (l *Ledger) Info(api string) (Account, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acct, ok := l.accounts[api]
	return acct, ok
}

// All returns every tracked API name in sorted order with its account.
func (l *Ledger) All() ([]string, map[string]Account) {
	l.mu.Lock()
	defer l.mu.Unlock()

	names := make([]string, 0, len(l.accounts))
	accounts := make(map[string]Account, len(l.accounts))
	for name, acct := range l.accounts {
		names = append(names, name)
		accounts[name] = acct
	}
	sort.Strings(names)
	return names, accounts
}

func (l *Ledger) load() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(l.warn, "warning: reading credits ledger: %v, starting empty\n", err)
		}
		return
	}

	var accounts map[string]Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		fmt.Fprintf(l.warn, "warning: credits ledger unreadable: %v, starting empty\n", err)
		return
	}
	l.accounts = accounts
}

func (l *Ledger) persist() {
	data, err := json.MarshalIndent(l.accounts, "", "  ")
	if err != nil {
		fmt.Fprintf(l.warn, "warning: marshaling credits ledger: %v\n", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		fmt.Fprintf(l.warn, "warning: creating credits directory: %v\n", err)
		return
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		fmt.Fprintf(l.warn, "warning: writing credits ledger: %v\n", err)
		return
	}
	if err := os.Rename(tmp, l.path); err != nil {
		os.Remove(tmp)
		fmt.Fprintf(l.warn, "warning: replacing credits ledger: %v\n", err)
	}
}
