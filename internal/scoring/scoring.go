// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring assigns each lead a weighted propensity score built
// from five independent rules (role fit, scientific intent, company
// intent, technographic fit, location) and maps the capped total onto
// a priority tier.
package scoring

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// Score evaluates all rules against a lead and returns the capped
// total, the per-rule breakdown, and the resulting priority tier.
func Score(lead types.Lead) types.ScoreResult {
	return scoreAtYear(lead, time.Now().Year())
}

func scoreAtYear(lead types.Lead, currentYear int) types.ScoreResult {
	breakdown := types.ScoreBreakdown{
		RoleFit:          roleFit(lead),
		ScientificIntent: scientificIntent(lead, currentYear),
		CompanyIntent:    companyIntent(lead),
		Technographic:    technographic(lead),
		Location:         location(lead),
	}

	total := breakdown.Sum()
	if total > types.MaxPropensityScore {
		total = types.MaxPropensityScore
	}

	return types.ScoreResult{
		PropensityScore: total,
		Breakdown:       breakdown,
		PriorityLevel:   Tier(total),
	}
}

// Tier maps a propensity score onto its priority tier.
func Tier(score int) types.PriorityLevel {
	switch {
	case score >= 80:
		return types.PriorityHigh
	case score >= 50:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

// InHub reports whether a free-text location falls inside one of the
// named hub regions.
func InHub(location string) bool {
	lower := strings.ToLower(location)
	for _, aliases := range hubRegions {
		if containsAny(lower, aliases) {
			return true
		}
	}
	return false
}

// ScoreBatch scores every lead in place. A failure while scoring one
// record never aborts the batch: the record keeps a zero breakdown and
// the low tier, and a warning is written to progress.
func ScoreBatch(leads []types.Lead, progress io.Writer) []types.Lead {
	currentYear := time.Now().Year()
	for i := range leads {
		result, err := scoreOne(leads[i], currentYear)
		if err != nil {
			fmt.Fprintf(progress, "warning: scoring %q failed: %v\n", leads[i].Name, err)
			result = types.ScoreResult{PriorityLevel: types.PriorityLow}
		}
		leads[i].PropensityScore = result.PropensityScore
		leads[i].ScoreBreakdown = result.Breakdown
		leads[i].PriorityLevel = result.PriorityLevel
	}
	return leads
}

func scoreOne(lead types.Lead, currentYear int) (result types.ScoreResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluating rules: %v", r)
		}
	}()
	return scoreAtYear(lead, currentYear), nil
}
