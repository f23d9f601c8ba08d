// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup collapses duplicate mentions of the same person into a
// single merged lead using fuzzy name matching.
package dedup

import (
	"strings"

	"github.com/Up14/Lead-Finder/internal/affiliation"
	"github.com/Up14/Lead-Finder/pkg/types"
)

const (
	// nameThreshold is the minimum name similarity (0-100) for two
	// leads to denote the same person.
	nameThreshold = 85

	// companyThreshold is the minimum company similarity when both
	// leads carry a company. A missing company never blocks a match.
	companyThreshold = 80
)

// Deduplicate clusters leads that denote the same real-world person and
// merges each cluster into one lead. Clustering is a stable single
// pass: each not-yet-consumed lead seeds a cluster, and every later
// not-yet-consumed lead is compared against the original seed (never
// against fields another member merged in). Matches fold into an
// accumulating copy of the seed. Output order is the order of
// first-seen seeds. Leads with an empty name never match anything and
// pass through as singletons.
func Deduplicate(leads []types.Lead) []types.Lead {
	if len(leads) == 0 {
		return nil
	}

	consumed := make([]bool, len(leads))
	merged := make([]types.Lead, 0, len(leads))

	for i := range leads {
		if consumed[i] {
			continue
		}
		seed := leads[i]
		consumed[i] = true

		for j := i + 1; j < len(leads); j++ {
			if consumed[j] {
				continue
			}
			if samePerson(leads[i], leads[j]) {
				mergeInto(&seed, leads[j])
				consumed[j] = true
			}
		}

		merged = append(merged, seed)
	}

	return merged
}

// samePerson reports whether two leads denote the same person: name
// similarity (best of character ratio and token-set ratio) at or above
// the threshold, and compatible companies.
func samePerson(a, b types.Lead) bool {
	nameA := strings.ToLower(strings.TrimSpace(a.Name))
	nameB := strings.ToLower(strings.TrimSpace(b.Name))
	if nameA == "" || nameB == "" {
		return false
	}

	nameSim := Ratio(nameA, nameB)
	if ts := TokenSetRatio(nameA, nameB); ts > nameSim {
		nameSim = ts
	}
	if nameSim < nameThreshold {
		return false
	}

	companyA := strings.ToLower(strings.TrimSpace(a.Company))
	companyB := strings.ToLower(strings.TrimSpace(b.Company))
	if companyA == "" || companyB == "" {
		return true
	}
	return companyA == companyB || Ratio(companyA, companyB) >= companyThreshold
}

// mergeInto folds src into dst under the deterministic field policy:
// publication fields and email concatenate differing values with "; ",
// location fills only when empty, company is replaced only when dst
// holds the extractor's Unknown fallback, author position upgrades to
// the higher-priority value, and the publication date keeps the
// lexicographically greater ISO-prefix string.
func mergeInto(dst *types.Lead, src types.Lead) {
	dst.PublicationTitle = concatField(dst.PublicationTitle, src.PublicationTitle)
	dst.PublicationJournal = concatField(dst.PublicationJournal, src.PublicationJournal)
	dst.PubMedID = concatField(dst.PubMedID, src.PubMedID)
	dst.Email = concatField(dst.Email, src.Email)

	if dst.Location == "" && src.Location != "" {
		dst.Location = src.Location
	}

	if dst.Company == affiliation.Unknown && src.Company != "" && src.Company != affiliation.Unknown {
		dst.Company = src.Company
	}

	if src.AuthorPosition.Priority() > dst.AuthorPosition.Priority() {
		dst.AuthorPosition = src.AuthorPosition
	}

	// Zero-padded ISO-prefix dates compare correctly as strings.
	if src.PublicationDate != "" && src.PublicationDate > dst.PublicationDate {
		dst.PublicationDate = src.PublicationDate
	}
}

// concatField implements the shared merge rule for accumulating fields:
// fill when empty, keep when equal, otherwise join with "; ".
func concatField(dst, src string) string {
	switch {
	case dst == "":
		return src
	case src == "" || src == dst:
		return dst
	default:
		return dst + "; " + src
	}
}
