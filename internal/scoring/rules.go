// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"strconv"
	"strings"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// roleKeywords mark job titles with direct responsibility for the
// problem space. Any hit awards the full role-fit score.
var roleKeywords = []string{
	"toxicology", "safety", "hepatic", "3d", "preclinical",
	"pre-clinical", "drug safety", "safety assessment",
	"preclinical safety", "toxicologist", "safety scientist",
}

// scientificKeywords mark publications on the target disease area.
var scientificKeywords = []string{
	"dili", "drug-induced liver injury", "liver toxicity",
	"hepatic", "liver injury", "drug-induced",
	"hepatotoxicity", "liver damage",
}

// techKeywords mark companies or publications using adjacent
// technology platforms (in-vitro models, NAMs).
var techKeywords = []string{
	"3d", "in-vitro", "in vitro", "organ-on-chip", "organ on chip",
	"spheroid", "cell culture", "nam", "new approach methodology",
	"organoid", "microphysiological", "mps",
}

// hubRegions maps named biotech hubs to city and substring aliases.
// A location matching any alias under any hub scores.
var hubRegions = map[string][]string{
	"boston/cambridge": {"boston", "cambridge", "cambridge, ma", "boston, ma"},
	"bay area": {
		"san francisco", "palo alto", "south san francisco",
		"fremont", "bay area", "menlo park", "san jose",
		"mountain view", "redwood city",
	},
	"basel": {"basel", "switzerland"},
	"uk golden triangle": {
		"london", "oxford", "cambridge", "cambridgeshire",
		"london, uk", "oxford, uk", "cambridge, uk",
	},
}

// recencyWindowYears bounds the scientific-intent recency check: a
// publication with a parsable leading year older than this scores 0.
const recencyWindowYears = 2

// roleFit awards the full 30 points when the lead's title contains any
// role keyword. The professional-network title is preferred over the
// publication-derived one.
func roleFit(lead types.Lead) int {
	title := lead.LinkedInTitle
	if title == "" {
		title = lead.Title
	}
	if title == "" {
		return 0
	}
	if containsAny(strings.ToLower(title), roleKeywords) {
		return types.MaxRoleFit
	}
	return 0
}

// scientificIntent awards 40 points for a publication title matching a
// disease keyword. When the publication date has a parsable 4-digit
// leading year the award additionally requires the publication to fall
// within the recency window; an unparsable date does not withhold the
// award (keyword evidence alone suffices when recency cannot be
// checked).
func scientificIntent(lead types.Lead, currentYear int) int {
	if lead.PublicationTitle == "" {
		return 0
	}
	if !containsAny(strings.ToLower(lead.PublicationTitle), scientificKeywords) {
		return 0
	}

	if len(lead.PublicationDate) >= 4 {
		if year, err := strconv.Atoi(lead.PublicationDate[:4]); err == nil {
			if currentYear-year <= recencyWindowYears {
				return types.MaxScientificIntent
			}
			return 0
		}
	}

	return types.MaxScientificIntent
}

// companyIntent scores funding signals: an early growth round (Series
// A/B) awards 20, a later raise or IPO 15.
func companyIntent(lead types.Lead) int {
	stage := strings.ToLower(lead.CompanyFundingStage)
	if stage == "" {
		return 0
	}
	if strings.Contains(stage, "series a") || strings.Contains(stage, "series b") {
		return types.MaxCompanyIntent
	}
	if strings.Contains(stage, "series c") || strings.Contains(stage, "ipo") {
		return 15
	}
	return 0
}

// technographic awards 15 points when either the company industry or
// the publication title mentions an adjacent technology platform.
func technographic(lead types.Lead) int {
	industry := strings.ToLower(lead.CompanyIndustry)
	pubTitle := strings.ToLower(lead.PublicationTitle)

	for _, kw := range techKeywords {
		if strings.Contains(industry, kw) || strings.Contains(pubTitle, kw) {
			return types.MaxTechnographic
		}
	}
	return 0
}

// location awards 10 points for a lead located in a named hub region.
// The person-level location is preferred over the company HQ fallback.
func location(lead types.Lead) int {
	loc := lead.PersonLocation
	if loc == "" {
		loc = lead.CompanyHQ
	}
	if loc == "" {
		return 0
	}

	lower := strings.ToLower(loc)
	for _, aliases := range hubRegions {
		if containsAny(lower, aliases) {
			return types.MaxLocation
		}
	}
	return 0
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
