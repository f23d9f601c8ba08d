// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dedup

import (
	"testing"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// --- similarity ---

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "jane doe", "jane doe", 100},
		{"both empty", "", "", 100},
		{"one empty", "jane", "", 0},
		{"single insertion", "jane doe", "jane does", 89},
		{"disjoint", "abc", "xyz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("Ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSetRatioHandlesWordOrder(t *testing.T) {
	if got := TokenSetRatio("doe jane", "jane doe"); got != 100 {
		t.Errorf("TokenSetRatio = %d, want 100 for reordered tokens", got)
	}
}

func TestTokenSetRatioSharedSubset(t *testing.T) {
	// The shorter string is a token subset of the longer one; the
	// intersection-based comparison should score well above the raw
	// character ratio.
	got := TokenSetRatio("jane doe", "dr jane doe")
	raw := Ratio("jane doe", "dr jane doe")
	if got <= raw {
		t.Errorf("TokenSetRatio = %d, want > Ratio = %d", got, raw)
	}
}

// --- clustering ---

func TestDeduplicateMergesSimilarNames(t *testing.T) {
	leads := []types.Lead{
		{Name: "Jane Doe", Company: "Acme Biosciences"},
		{Name: "Jane  Doe", Company: "Acme Biosciences Inc"},
		{Name: "John Smith", Company: "Other Corp"},
	}

	out := Deduplicate(leads)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].Name != "Jane Doe" {
		t.Errorf("out[0].Name = %q, want seed name preserved", out[0].Name)
	}
	if out[1].Name != "John Smith" {
		t.Errorf("out[1].Name = %q, want stable seed order", out[1].Name)
	}
}

func TestDeduplicateCompanyMismatchBlocks(t *testing.T) {
	leads := []types.Lead{
		{Name: "Jane Doe", Company: "Acme Biosciences"},
		{Name: "Jane Doe", Company: "Completely Different Pharma"},
	}

	out := Deduplicate(leads)
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2: differing companies must not merge", len(out))
	}
}

func TestDeduplicateEmptyCompanyNeverBlocks(t *testing.T) {
	leads := []types.Lead{
		{Name: "Jane Doe", Company: "Acme Biosciences"},
		{Name: "Jane Doe"},
	}

	out := Deduplicate(leads)
	if len(out) != 1 {
		t.Errorf("len(out) = %d, want 1: missing company is compatible", len(out))
	}
}

func TestDeduplicateEmptyNamesAreSingletons(t *testing.T) {
	leads := []types.Lead{
		{Name: "", Company: "Acme"},
		{Name: "", Company: "Acme"},
	}

	out := Deduplicate(leads)
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2: empty names never match", len(out))
	}
}

func TestDeduplicateMatchesAgainstSeedOnly(t *testing.T) {
	// The third lead matches the second but not the first. Because
	// membership is decided against the cluster seed, it must stay a
	// separate record.
	leads := []types.Lead{
		{Name: "Katherine Johnson-Smith"},
		{Name: "Katherine Johnson Smith"},
		{Name: "K Johnson Smith"},
	}

	if !samePerson(leads[1], leads[2]) {
		t.Fatal("fixture: leads 2 and 3 should match pairwise")
	}
	if samePerson(leads[0], leads[2]) {
		t.Fatal("fixture: leads 1 and 3 should not match directly")
	}

	out := Deduplicate(leads)
	if len(out) != 2 {
		t.Errorf("len(out) = %d, want 2: no transitive closure through later members", len(out))
	}
}

func TestDeduplicateEmptyInput(t *testing.T) {
	if out := Deduplicate(nil); out != nil {
		t.Errorf("Deduplicate(nil) = %v, want nil", out)
	}
}

// --- merge policy ---

func TestMergePolicy(t *testing.T) {
	tests := []struct {
		name  string
		dst   types.Lead
		src   types.Lead
		check func(t *testing.T, got types.Lead)
	}{
		{
			name: "differing emails concatenate",
			dst:  types.Lead{Email: "a@x.com"},
			src:  types.Lead{Email: "b@x.com"},
			check: func(t *testing.T, got types.Lead) {
				if got.Email != "a@x.com; b@x.com" {
					t.Errorf("Email = %q", got.Email)
				}
			},
		},
		{
			name: "equal emails kept once",
			dst:  types.Lead{Email: "a@x.com"},
			src:  types.Lead{Email: "a@x.com"},
			check: func(t *testing.T, got types.Lead) {
				if got.Email != "a@x.com" {
					t.Errorf("Email = %q", got.Email)
				}
			},
		},
		{
			name: "unknown company replaced",
			dst:  types.Lead{Company: "Unknown"},
			src:  types.Lead{Company: "Acme"},
			check: func(t *testing.T, got types.Lead) {
				if got.Company != "Acme" {
					t.Errorf("Company = %q", got.Company)
				}
			},
		},
		{
			name: "known company never replaced",
			dst:  types.Lead{Company: "Acme"},
			src:  types.Lead{Company: "Globex"},
			check: func(t *testing.T, got types.Lead) {
				if got.Company != "Acme" {
					t.Errorf("Company = %q", got.Company)
				}
			},
		},
		{
			name: "author position upgrades",
			dst:  types.Lead{AuthorPosition: types.PositionCoAuthor},
			src:  types.Lead{AuthorPosition: types.PositionCorresponding},
			check: func(t *testing.T, got types.Lead) {
				if got.AuthorPosition != types.PositionCorresponding {
					t.Errorf("AuthorPosition = %q", got.AuthorPosition)
				}
			},
		},
		{
			name: "author position never downgrades",
			dst:  types.Lead{AuthorPosition: types.PositionFirst},
			src:  types.Lead{AuthorPosition: types.PositionLast},
			check: func(t *testing.T, got types.Lead) {
				if got.AuthorPosition != types.PositionFirst {
					t.Errorf("AuthorPosition = %q", got.AuthorPosition)
				}
			},
		},
		{
			name: "location fills but never overwrites",
			dst:  types.Lead{Location: "Boston, MA"},
			src:  types.Lead{Location: "Basel, Switzerland"},
			check: func(t *testing.T, got types.Lead) {
				if got.Location != "Boston, MA" {
					t.Errorf("Location = %q", got.Location)
				}
			},
		},
		{
			name: "newer publication date wins",
			dst:  types.Lead{PublicationDate: "2023-04"},
			src:  types.Lead{PublicationDate: "2024-01-15"},
			check: func(t *testing.T, got types.Lead) {
				if got.PublicationDate != "2024-01-15" {
					t.Errorf("PublicationDate = %q", got.PublicationDate)
				}
			},
		},
		{
			name: "older publication date discarded",
			dst:  types.Lead{PublicationDate: "2024"},
			src:  types.Lead{PublicationDate: "2021-12-01"},
			check: func(t *testing.T, got types.Lead) {
				if got.PublicationDate != "2024" {
					t.Errorf("PublicationDate = %q", got.PublicationDate)
				}
			},
		},
		{
			name: "publication titles concatenate in order",
			dst:  types.Lead{PublicationTitle: "Paper A", PubMedID: "111"},
			src:  types.Lead{PublicationTitle: "Paper B", PubMedID: "222"},
			check: func(t *testing.T, got types.Lead) {
				if got.PublicationTitle != "Paper A; Paper B" {
					t.Errorf("PublicationTitle = %q", got.PublicationTitle)
				}
				if got.PubMedID != "111; 222" {
					t.Errorf("PubMedID = %q", got.PubMedID)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := tt.dst
			mergeInto(&dst, tt.src)
			tt.check(t, dst)
		})
	}
}
