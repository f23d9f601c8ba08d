// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the lead-finder pipeline.
package types

// AuthorPosition describes a person's position on a publication's author
// list. Positions are ordered: a Corresponding Author outranks a First
// Author, which outranks a Last Author, which outranks a Co-Author.
type AuthorPosition string

const (
	PositionCorresponding AuthorPosition = "Corresponding Author"
	PositionFirst         AuthorPosition = "First Author"
	PositionLast          AuthorPosition = "Last Author"
	PositionCoAuthor      AuthorPosition = "Co-Author"
)

// Priority returns the merge priority of the position. Unknown or empty
// positions return 0 and are outranked by every named position.
func (p AuthorPosition) Priority() int {
	switch p {
	case PositionCorresponding:
		return 4
	case PositionFirst:
		return 3
	case PositionLast:
		return 2
	case PositionCoAuthor:
		return 1
	default:
		return 0
	}
}

// Lead represents one person-and-context record flowing through the
// pipeline. Every field except Name is optional; an empty string means
// the value is absent. Scoring and merge rules treat empty and missing
// identically.
type Lead struct {
	// Name is the person's full name as extracted from the source.
	Name string `json:"name" yaml:"name"`

	// Title is the publication-derived job title, if any.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Company is the institution or company extracted from the
	// affiliation string. "Unknown" is the extractor's fallback value
	// and is treated as replaceable during merge.
	Company string `json:"company,omitempty" yaml:"company,omitempty"`

	// Location is the trailing city/country segment of the affiliation.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Email holds one or more addresses; merged duplicates are joined
	// with "; ".
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	Phone       string `json:"phone,omitempty" yaml:"phone,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty" yaml:"linkedin_url,omitempty"`

	// LinkedInTitle is the professional-network job title, preferred
	// over Title by the role-fit scoring rule.
	LinkedInTitle string `json:"linkedin_title,omitempty" yaml:"linkedin_title,omitempty"`

	// Source identifies the search backend that produced the lead.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	AuthorPosition AuthorPosition `json:"author_position,omitempty" yaml:"author_position,omitempty"`

	// Affiliation is the raw institutional affiliation string the
	// company, location, and email fields were extracted from.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`

	// PublicationTitle and the fields below describe the publication
	// the lead was discovered on. Merged duplicates concatenate
	// differing values with "; ".
	PublicationTitle   string `json:"publication_title,omitempty" yaml:"publication_title,omitempty"`
	PublicationJournal string `json:"publication_journal,omitempty" yaml:"publication_journal,omitempty"`

	// PublicationDate is an ISO-prefix string: YYYY, YYYY-MM, or
	// YYYY-MM-DD. Partial dates are valid.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	PubMedID string `json:"pubmed_id,omitempty" yaml:"pubmed_id,omitempty"`

	// Enrichment fields, filled by the (external) enrichment
	// collaborator before scoring.
	CompanyHQ           string `json:"company_hq,omitempty" yaml:"company_hq,omitempty"`
	CompanyFundingStage string `json:"company_funding_stage,omitempty" yaml:"company_funding_stage,omitempty"`
	CompanyIndustry     string `json:"company_industry,omitempty" yaml:"company_industry,omitempty"`
	PersonLocation      string `json:"person_location,omitempty" yaml:"person_location,omitempty"`

	// Scoring output, set by the ranking stage.
	PropensityScore int            `json:"propensity_score" yaml:"propensity_score"`
	ScoreBreakdown  ScoreBreakdown `json:"score_breakdown" yaml:"score_breakdown"`
	PriorityLevel   PriorityLevel  `json:"priority_level,omitempty" yaml:"priority_level,omitempty"`
	Rank            int            `json:"rank,omitempty" yaml:"rank,omitempty"`
}
