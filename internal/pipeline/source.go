// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// Source searches a single external backend for leads matching a term.
// Each source (PubMed, a professional-network scraper) implements this
// interface; the identification stage treats them uniformly.
type Source interface {
	// Name identifies the source for progress output and for the API
	// credit ledger.
	Name() string

	// Search returns up to limit leads for term, restricted to the last
	// yearsBack years of publications.
	Search(ctx context.Context, term string, limit, yearsBack int) ([]types.Lead, error)
}
