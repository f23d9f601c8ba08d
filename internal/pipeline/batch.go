// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// BatchFile is the on-disk representation of a batch run: the search
// terms, the identify settings that apply to them, and (after a run)
// the ranked leads with summary statistics. A batch can be re-ranked
// later without re-querying APIs.
type BatchFile struct {
	SearchTerms []string             `yaml:"search_terms"`
	Config      types.IdentifyConfig `yaml:"config"`
	Leads       []types.Lead         `yaml:"leads,omitempty"`
	Summary     BatchSummary         `yaml:"summary,omitempty"`
}

// BatchSummary stores run statistics and a timestamp.
type BatchSummary struct {
	TotalLeads        int       `yaml:"total_leads"`
	DuplicatesRemoved int       `yaml:"duplicates_removed"`
	CacheHits         int       `yaml:"cache_hits"`
	TermErrors        []string  `yaml:"term_errors,omitempty"`
	HighPriority      int       `yaml:"high_priority"`
	MediumPriority    int       `yaml:"medium_priority"`
	LowPriority       int       `yaml:"low_priority"`
	Timestamp         time.Time `yaml:"timestamp"`
}

// ReadBatchFile loads a batch definition from a YAML file.
func ReadBatchFile(path string) (*BatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var bf BatchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(bf.SearchTerms) == 0 {
		return nil, fmt.Errorf("batch file %s contains no search terms", path)
	}
	return &bf, nil
}

// WriteBatchFile saves a completed batch, including its ranked leads,
// back to a YAML file.
func WriteBatchFile(path string, bf *BatchFile) error {
	bf.Summary.Timestamp = time.Now()
	data, err := yaml.Marshal(bf)
	if err != nil {
		return fmt.Errorf("marshaling batch file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
