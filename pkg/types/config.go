package types

import "time"

// CacheConfig holds settings for the expiring query cache.
type CacheConfig struct {
	// Path is the cache file location (default "data/cache/search_results.json").
	Path string `json:"path" yaml:"path"`

	// ExpiryDays is the entry lifetime in days (default 30).
	ExpiryDays int `json:"expiry_days" yaml:"expiry_days"`

	// MaxEntries caps the number of cached queries (default 50).
	MaxEntries int `json:"max_entries" yaml:"max_entries"`

	// MaxSizeMB caps the persisted file size in megabytes (default 100).
	MaxSizeMB int `json:"max_size_mb" yaml:"max_size_mb"`
}

// ExpiryWindow returns the configured expiry as a duration.
func (c CacheConfig) ExpiryWindow() time.Duration {
	days := c.ExpiryDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}

// EntryCap returns MaxEntries with the default applied.
func (c CacheConfig) EntryCap() int {
	if c.MaxEntries <= 0 {
		return 50
	}
	return c.MaxEntries
}

// MaxSizeBytes returns the byte budget derived from MaxSizeMB.
func (c CacheConfig) MaxSizeBytes() int64 {
	mb := c.MaxSizeMB
	if mb <= 0 {
		mb = 100
	}
	return int64(mb) * 1024 * 1024
}

// IdentifyConfig holds settings for the identification stage.
type IdentifyConfig struct {
	// ResultsPerTerm is the number of results requested per search term
	// (default 50). It is part of the cache key.
	ResultsPerTerm int `json:"results_per_term" yaml:"results_per_term"`

	// YearsBack limits the search window (default 2). Also part of the
	// cache key.
	YearsBack int `json:"years_back" yaml:"years_back"`
}

// StoreConfig holds settings for the ranked-lead store.
type StoreConfig struct {
	// LeadsDir is the base directory for the store (contains index/, export files).
	LeadsDir string `json:"leads_dir" yaml:"leads_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// CreditsConfig holds settings for the API credit ledger.
type CreditsConfig struct {
	// Path is the ledger file location (default "data/cache/api_credits.json").
	Path string `json:"path" yaml:"path"`

	// DefaultQuota is the quota assigned when an API is first tracked
	// (default 100).
	DefaultQuota int `json:"default_quota" yaml:"default_quota"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Identify IdentifyConfig `json:"identify" yaml:"identify"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Credits  CreditsConfig  `json:"credits" yaml:"credits"`
}
