// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Up14/Lead-Finder/internal/scoring"
	"github.com/Up14/Lead-Finder/pkg/types"
)

// QueryOptions holds filters for lead queries.
type QueryOptions struct {
	// Batch restricts results to one batch. Empty matches all batches.
	Batch string

	// Tier filters by priority tier.
	Tier types.PriorityLevel

	// MinScore drops leads below a propensity score.
	MinScore int

	// HubOnly keeps only leads located in a named hub region.
	HubOnly bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// StoredLead is a lead with its database identity.
type StoredLead struct {
	ID        string `json:"id" yaml:"id"`
	Batch     string `json:"batch" yaml:"batch"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	types.Lead
}

// Query returns stored leads matching the filters, ordered by rank
// within each batch.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]StoredLead, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, batch, name, title, company, location, email, phone,
			linkedin_url, linkedin_title, source, author_position,
			affiliation, publication_title, publication_journal,
			publication_date, pubmed_id, company_hq,
			company_funding_stage, company_industry, person_location,
			propensity_score, score_breakdown, priority_level, rank,
			created_at
		FROM leads
		WHERE 1=1`)

	if opts.Batch != "" {
		qb.WriteString(` AND batch = ?`)
		args = append(args, opts.Batch)
	}
	if opts.Tier != "" {
		qb.WriteString(` AND priority_level = ?`)
		args = append(args, string(opts.Tier))
	}
	if opts.MinScore > 0 {
		qb.WriteString(` AND propensity_score >= ?`)
		args = append(args, opts.MinScore)
	}
	qb.WriteString(` ORDER BY batch, rank`)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying leads: %w", err)
	}
	defer rows.Close()

	var results []StoredLead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		// Hub membership is a keyword match over free-text locations,
		// so it is filtered here rather than in SQL.
		if opts.HubOnly && !inHub(lead.Lead) {
			continue
		}
		results = append(results, lead)
		if len(results) >= maxResults {
			break
		}
	}
	return results, rows.Err()
}

func inHub(lead types.Lead) bool {
	for _, loc := range []string{lead.PersonLocation, lead.CompanyHQ, lead.Location} {
		if loc != "" && scoring.InHub(loc) {
			return true
		}
	}
	return false
}

func scanLead(rows *sql.Rows) (StoredLead, error) {
	var (
		lead          StoredLead
		position      string
		breakdownJSON sql.NullString
		priority      string
	)

	err := rows.Scan(
		&lead.ID, &lead.Batch, &lead.Name, &lead.Title, &lead.Company,
		&lead.Location, &lead.Email, &lead.Phone, &lead.LinkedInURL,
		&lead.LinkedInTitle, &lead.Source, &position,
		&lead.Affiliation, &lead.PublicationTitle, &lead.PublicationJournal,
		&lead.PublicationDate, &lead.PubMedID, &lead.CompanyHQ,
		&lead.CompanyFundingStage, &lead.CompanyIndustry,
		&lead.PersonLocation, &lead.PropensityScore, &breakdownJSON,
		&priority, &lead.Rank, &lead.CreatedAt,
	)
	if err != nil {
		return StoredLead{}, fmt.Errorf("scanning lead row: %w", err)
	}

	lead.AuthorPosition = types.AuthorPosition(position)
	lead.PriorityLevel = types.PriorityLevel(priority)
	if breakdownJSON.Valid {
		json.Unmarshal([]byte(breakdownJSON.String), &lead.ScoreBreakdown)
	}
	return lead, nil
}
