// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Up14/Lead-Finder/pkg/types"
)

const testYear = 2026

func TestScoreFullHouse(t *testing.T) {
	lead := types.Lead{
		Name:                "Ada Example",
		LinkedInTitle:       "Director of Toxicology",
		PublicationTitle:    "DILI prediction in 3D hepatic spheroids",
		PublicationDate:     "2024-06-01",
		CompanyFundingStage: "Series B",
		CompanyIndustry:     "organ-on-chip",
		PersonLocation:      "Boston, MA",
	}

	result := scoreAtYear(lead, testYear)

	want := types.ScoreBreakdown{
		RoleFit:          30,
		ScientificIntent: 40,
		CompanyIntent:    20,
		Technographic:    15,
		Location:         10,
	}
	if result.Breakdown != want {
		t.Errorf("breakdown = %+v, want %+v", result.Breakdown, want)
	}
	if result.PropensityScore != types.MaxPropensityScore {
		t.Errorf("score = %d, want capped at %d", result.PropensityScore, types.MaxPropensityScore)
	}
	if result.PriorityLevel != types.PriorityHigh {
		t.Errorf("tier = %q, want %q", result.PriorityLevel, types.PriorityHigh)
	}
}

func TestRoleFit(t *testing.T) {
	tests := []struct {
		name string
		lead types.Lead
		want int
	}{
		{
			name: "keyword in title",
			lead: types.Lead{Title: "Senior Toxicologist"},
			want: 30,
		},
		{
			name: "linkedin title preferred over publication title",
			lead: types.Lead{Title: "Head of Preclinical Safety", LinkedInTitle: "VP of Marketing"},
			want: 0,
		},
		{
			name: "no title",
			lead: types.Lead{},
			want: 0,
		},
		{
			name: "unrelated title",
			lead: types.Lead{Title: "Software Engineer"},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := roleFit(tt.lead); got != tt.want {
				t.Errorf("roleFit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScientificIntent(t *testing.T) {
	tests := []struct {
		name string
		lead types.Lead
		want int
	}{
		{
			name: "recent keyword publication",
			lead: types.Lead{PublicationTitle: "Hepatotoxicity screening", PublicationDate: "2025-01-15"},
			want: 40,
		},
		{
			name: "boundary of recency window",
			lead: types.Lead{PublicationTitle: "Liver injury models", PublicationDate: "2024"},
			want: 40,
		},
		{
			name: "stale publication",
			lead: types.Lead{PublicationTitle: "DILI review", PublicationDate: "2019-03-01"},
			want: 0,
		},
		{
			name: "unparsable date still awards on keyword",
			lead: types.Lead{PublicationTitle: "Liver toxicity in vitro", PublicationDate: "Spring 2020"},
			want: 40,
		},
		{
			name: "missing date still awards on keyword",
			lead: types.Lead{PublicationTitle: "Drug-induced liver injury atlas"},
			want: 40,
		},
		{
			name: "no keyword",
			lead: types.Lead{PublicationTitle: "Cardiac electrophysiology", PublicationDate: "2025"},
			want: 0,
		},
		{
			name: "no publication",
			lead: types.Lead{},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scientificIntent(tt.lead, testYear); got != tt.want {
				t.Errorf("scientificIntent() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompanyIntent(t *testing.T) {
	tests := []struct {
		stage string
		want  int
	}{
		{"Series A", 20},
		{"Series B", 20},
		{"series b extension", 20},
		{"Series C", 15},
		{"IPO", 15},
		{"Seed", 0},
		{"", 0},
	}
	for _, tt := range tests {
		got := companyIntent(types.Lead{CompanyFundingStage: tt.stage})
		if got != tt.want {
			t.Errorf("companyIntent(%q) = %d, want %d", tt.stage, got, tt.want)
		}
	}
}

func TestTechnographic(t *testing.T) {
	tests := []struct {
		name string
		lead types.Lead
		want int
	}{
		{
			name: "industry keyword",
			lead: types.Lead{CompanyIndustry: "3D cell culture platforms"},
			want: 15,
		},
		{
			name: "publication keyword",
			lead: types.Lead{PublicationTitle: "Organoid-based screening"},
			want: 15,
		},
		{
			name: "no keywords",
			lead: types.Lead{CompanyIndustry: "Consulting", PublicationTitle: "Annual report"},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := technographic(tt.lead); got != tt.want {
				t.Errorf("technographic() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name string
		lead types.Lead
		want int
	}{
		{
			name: "person location in hub",
			lead: types.Lead{PersonLocation: "Cambridge, MA"},
			want: 10,
		},
		{
			name: "company HQ fallback",
			lead: types.Lead{CompanyHQ: "Basel, Switzerland"},
			want: 10,
		},
		{
			name: "person location preferred over HQ",
			lead: types.Lead{PersonLocation: "Austin, TX", CompanyHQ: "South San Francisco, CA"},
			want: 0,
		},
		{
			name: "no location",
			lead: types.Lead{},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := location(tt.lead); got != tt.want {
				t.Errorf("location() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		score int
		want  types.PriorityLevel
	}{
		{100, types.PriorityHigh},
		{80, types.PriorityHigh},
		{79, types.PriorityMedium},
		{50, types.PriorityMedium},
		{49, types.PriorityLow},
		{0, types.PriorityLow},
	}
	for _, tt := range tests {
		if got := Tier(tt.score); got != tt.want {
			t.Errorf("Tier(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScoreBatchSetsFields(t *testing.T) {
	leads := []types.Lead{
		{Name: "Ada Example", Title: "Toxicologist"},
		{Name: "Blank Record"},
	}

	var progress bytes.Buffer
	scored := ScoreBatch(leads, &progress)

	if len(scored) != 2 {
		t.Fatalf("got %d leads, want 2", len(scored))
	}
	if scored[0].PropensityScore != 30 || scored[0].PriorityLevel != types.PriorityLow {
		t.Errorf("lead 1 scored %d/%q, want 30/%q",
			scored[0].PropensityScore, scored[0].PriorityLevel, types.PriorityLow)
	}
	if scored[1].PropensityScore != 0 {
		t.Errorf("empty lead scored %d, want 0", scored[1].PropensityScore)
	}
	if strings.Contains(progress.String(), "warning") {
		t.Errorf("unexpected warnings: %s", progress.String())
	}
}
