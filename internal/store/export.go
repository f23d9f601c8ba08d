// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes matching leads to leadsDir/export.yaml. It
// supports the same filters as Query.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) error {
	leads, err := s.exportLeads(ctx, opts)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(leads)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.leadsDir, "export.yaml"), data, 0o644)
}

// ExportJSON writes matching leads to leadsDir/export.json.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) error {
	leads, err := s.exportLeads(ctx, opts)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.leadsDir, "export.json"), data, 0o644)
}

// ExportCSV writes matching leads to leadsDir/export.csv with a header
// row, one lead per row. The flat layout is meant for spreadsheets and
// CRM imports, so the score breakdown is split into columns.
func (s *Store) ExportCSV(ctx context.Context, opts QueryOptions) error {
	leads, err := s.exportLeads(ctx, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(s.leadsDir, "export.csv"))
	if err != nil {
		return fmt.Errorf("creating export.csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"rank", "name", "title", "company", "email", "phone",
		"linkedin_url", "location", "publication_title",
		"publication_date", "propensity_score", "priority_level",
		"role_fit", "scientific_intent", "company_intent",
		"technographic", "location_score", "batch",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, lead := range leads {
		title := lead.LinkedInTitle
		if title == "" {
			title = lead.Title
		}
		location := lead.PersonLocation
		if location == "" {
			location = lead.Location
		}
		row := []string{
			strconv.Itoa(lead.Rank), lead.Name, title, lead.Company,
			lead.Email, lead.Phone, lead.LinkedInURL, location,
			lead.PublicationTitle, lead.PublicationDate,
			strconv.Itoa(lead.PropensityScore), string(lead.PriorityLevel),
			strconv.Itoa(lead.ScoreBreakdown.RoleFit),
			strconv.Itoa(lead.ScoreBreakdown.ScientificIntent),
			strconv.Itoa(lead.ScoreBreakdown.CompanyIntent),
			strconv.Itoa(lead.ScoreBreakdown.Technographic),
			strconv.Itoa(lead.ScoreBreakdown.Location),
			lead.Batch,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) exportLeads(ctx context.Context, opts QueryOptions) ([]StoredLead, error) {
	opts.MaxResults = exportLimit
	leads, err := s.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return leads, nil
}
