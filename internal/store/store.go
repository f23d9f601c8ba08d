// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists ranked leads in a SQLite database so batches
// can be queried and exported after a run.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Up14/Lead-Finder/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "leads.db"
)

// Store manages the lead SQLite database.
type Store struct {
	db         *sql.DB
	leadsDir   string
	maxResults int
}

// NewStore opens or creates the lead database at
// leadsDir/index/leads.db, creating the schema if needed.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.LeadsDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		leadsDir:   cfg.LeadsDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			batch TEXT NOT NULL,
			name TEXT NOT NULL,
			title TEXT,
			company TEXT,
			location TEXT,
			email TEXT,
			phone TEXT,
			linkedin_url TEXT,
			linkedin_title TEXT,
			source TEXT,
			author_position TEXT,
			affiliation TEXT,
			publication_title TEXT,
			publication_journal TEXT,
			publication_date TEXT,
			pubmed_id TEXT,
			company_hq TEXT,
			company_funding_stage TEXT,
			company_industry TEXT,
			person_location TEXT,
			propensity_score INTEGER NOT NULL DEFAULT 0,
			score_breakdown TEXT,
			priority_level TEXT,
			rank INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_batch ON leads(batch)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_priority ON leads(priority_level)`,
		`CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(propensity_score)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save replaces the stored leads for a batch in one transaction.
// Re-running a batch never leaves stale rows behind.
func (s *Store) Save(ctx context.Context, batch string, leads []types.Lead) error {
	if batch == "" {
		return fmt.Errorf("batch name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE batch = ?`, batch); err != nil {
		return fmt.Errorf("deleting old batch rows: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO leads (
			id, batch, name, title, company, location, email, phone,
			linkedin_url, linkedin_title, source, author_position,
			affiliation, publication_title, publication_journal,
			publication_date, pubmed_id, company_hq,
			company_funding_stage, company_industry, person_location,
			propensity_score, score_breakdown, priority_level, rank,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, lead := range leads {
		breakdownJSON, _ := json.Marshal(lead.ScoreBreakdown)
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(), batch, lead.Name, lead.Title, lead.Company,
			lead.Location, lead.Email, lead.Phone, lead.LinkedInURL,
			lead.LinkedInTitle, lead.Source, string(lead.AuthorPosition),
			lead.Affiliation, lead.PublicationTitle, lead.PublicationJournal,
			lead.PublicationDate, lead.PubMedID, lead.CompanyHQ,
			lead.CompanyFundingStage, lead.CompanyIndustry,
			lead.PersonLocation, lead.PropensityScore,
			string(breakdownJSON), string(lead.PriorityLevel), lead.Rank,
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting lead %q: %w", lead.Name, err)
		}
	}

	return tx.Commit()
}

// Batches returns the distinct batch names in the store, newest first.
func (s *Store) Batches(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT batch FROM leads GROUP BY batch ORDER BY max(created_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	defer rows.Close()

	var batches []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("scanning batch row: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}
