// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the lead-finder stages together: identify
// leads per search term (cache-first, credit-gated), deduplicate, then
// score and rank.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/Up14/Lead-Finder/internal/affiliation"
	"github.com/Up14/Lead-Finder/internal/cache"
	"github.com/Up14/Lead-Finder/internal/credits"
	"github.com/Up14/Lead-Finder/internal/dedup"
	"github.com/Up14/Lead-Finder/internal/rank"
	"github.com/Up14/Lead-Finder/internal/scoring"
	"github.com/Up14/Lead-Finder/pkg/types"
)

// IdentifyOutput holds the deduplicated leads and per-run statistics.
type IdentifyOutput struct {
	Leads             []types.Lead
	CacheHits         int
	DuplicatesRemoved int
	TermErrors        []string
}

// TierCounts summarizes how many leads landed in each priority tier.
type TierCounts struct {
	High   int
	Medium int
	Low    int
}

// Identify runs every search term against the source, reading through
// the cache and booking credit for live calls. A failing term never
// aborts the batch: its error is recorded and the remaining terms run.
// The concatenated results are deduplicated before returning.
func Identify(ctx context.Context, terms []string, source Source, store *cache.Store, ledger *credits.Ledger, cfg types.IdentifyConfig, w io.Writer) (IdentifyOutput, error) {
	if len(terms) == 0 {
		return IdentifyOutput{}, fmt.Errorf("no search terms provided")
	}
	if source == nil {
		return IdentifyOutput{}, fmt.Errorf("no search source configured")
	}

	limit := cfg.ResultsPerTerm
	if limit <= 0 {
		limit = 50
	}
	yearsBack := cfg.YearsBack
	if yearsBack <= 0 {
		yearsBack = 2
	}

	var out IdentifyOutput
	var all []types.Lead

	for _, term := range terms {
		key := cache.QueryKey(term, limit, yearsBack)

		var leads []types.Lead
		if store != nil && store.Get(key, &leads) {
			out.CacheHits++
			fmt.Fprintf(w, "cache hit for %q (%d leads)\n", term, len(leads))
		} else {
			if ledger != nil && !ledger.CanCall(source.Name()) {
				msg := fmt.Sprintf("%s: credit exhausted, skipping %q", source.Name(), term)
				out.TermErrors = append(out.TermErrors, msg)
				fmt.Fprintf(w, "warning: %s\n", msg)
				continue
			}

			var err error
			leads, err = source.Search(ctx, term, limit, yearsBack)
			if ledger != nil {
				ledger.Record(source.Name(), 1)
			}
			if err != nil {
				msg := fmt.Sprintf("%s: searching %q: %v", source.Name(), term, err)
				out.TermErrors = append(out.TermErrors, msg)
				fmt.Fprintf(w, "warning: %s\n", msg)
				continue
			}
			fmt.Fprintf(w, "searched %q (%d leads)\n", term, len(leads))

			if store != nil {
				store.Put(key, leads, len(leads))
			}
		}

		extractAffiliations(leads)
		all = append(all, leads...)
	}

	out.Leads = dedup.Deduplicate(all)
	out.DuplicatesRemoved = len(all) - len(out.Leads)
	return out, nil
}

// extractAffiliations fills company, location, and email from the raw
// affiliation string wherever the source left them empty.
func extractAffiliations(leads []types.Lead) {
	for i := range leads {
		if leads[i].Affiliation == "" {
			continue
		}
		if leads[i].Company == "" {
			leads[i].Company = affiliation.Company(leads[i].Affiliation)
		}
		if leads[i].Location == "" {
			leads[i].Location = affiliation.Location(leads[i].Affiliation)
		}
		if leads[i].Email == "" {
			leads[i].Email = affiliation.Email(leads[i].Affiliation)
		}
	}
}

// Rank scores every lead, orders the batch by descending score, and
// assigns competition ranks.
func Rank(leads []types.Lead, w io.Writer) ([]types.Lead, TierCounts) {
	leads = scoring.ScoreBatch(leads, w)
	rank.SortByScore(leads)
	rank.Assign(leads)

	var counts TierCounts
	for i := range leads {
		switch leads[i].PriorityLevel {
		case types.PriorityHigh:
			counts.High++
		case types.PriorityMedium:
			counts.Medium++
		default:
			counts.Low++
		}
	}
	fmt.Fprintf(w, "ranked %d leads: %d high, %d medium, %d low\n",
		len(leads), counts.High, counts.Medium, counts.Low)
	return leads, counts
}

// Run executes the full pipeline for a batch definition and fills in
// the batch's leads and summary.
func Run(ctx context.Context, bf *BatchFile, source Source, store *cache.Store, ledger *credits.Ledger, w io.Writer) error {
	identified, err := Identify(ctx, bf.SearchTerms, source, store, ledger, bf.Config, w)
	if err != nil {
		return fmt.Errorf("identifying leads: %w", err)
	}

	ranked, counts := Rank(identified.Leads, w)

	bf.Leads = ranked
	bf.Summary = BatchSummary{
		TotalLeads:        len(ranked),
		DuplicatesRemoved: identified.DuplicatesRemoved,
		CacheHits:         identified.CacheHits,
		TermErrors:        identified.TermErrors,
		HighPriority:      counts.High,
		MediumPriority:    counts.Medium,
		LowPriority:       counts.Low,
	}
	return nil
}
