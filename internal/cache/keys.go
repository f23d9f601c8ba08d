// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// QueryKey builds the cache key for a search-stage query. Keys embed
// every parameter that changes the result set, so a different limit or
// lookback window never reuses a stale entry.
func QueryKey(term string, limit, yearsBack int) string {
	return fmt.Sprintf("%s_%d_%d", term, limit, yearsBack)
}

// LeadKey builds the cache key for a per-person enrichment lookup: an
// md5 digest of the lowercased "name_company" pair. Hashing keeps
// punctuation and unicode in names from producing unwieldy keys.
func LeadKey(name, company string) string {
	raw := strings.ToLower(strings.TrimSpace(name)) + "_" + strings.ToLower(strings.TrimSpace(company))
	sum := md5.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}
