// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders scored leads and assigns competition ranks.
package rank

import (
	"sort"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// SortByScore orders leads by descending propensity score. The sort is
// stable, so leads with equal scores keep their incoming order.
func SortByScore(leads []types.Lead) {
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].PropensityScore > leads[j].PropensityScore
	})
}

// Assign writes competition ranks ("1224") onto a score-ordered slice:
// equal scores share a rank, and the next distinct score is ranked by
// its one-based position, leaving gaps after ties.
func Assign(leads []types.Lead) {
	for i := range leads {
		if i > 0 && leads[i].PropensityScore == leads[i-1].PropensityScore {
			leads[i].Rank = leads[i-1].Rank
			continue
		}
		leads[i].Rank = i + 1
	}
}
