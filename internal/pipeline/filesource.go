// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/Up14/Lead-Finder/pkg/types"
)

// FileSource serves search results from a directory of YAML files, one
// file per term. External collectors drop their raw output here and
// the pipeline consumes it without any network access. The file for a
// term is <dir>/<slug>.yaml holding a list of leads.
type FileSource struct {
	dir string
}

// NewFileSource returns a source backed by dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Name implements Source.
func (f *FileSource) Name() string { return "file" }

// Search implements Source. The limit is applied after reading;
// yearsBack is ignored because the collector already applied it.
func (f *FileSource) Search(_ context.Context, term string, limit, _ int) ([]types.Lead, error) {
	path := filepath.Join(f.dir, TermSlug(term)+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading term file: %w", err)
	}

	var leads []types.Lead
	if err := yaml.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("parsing term file %s: %w", path, err)
	}
	if limit > 0 && len(leads) > limit {
		leads = leads[:limit]
	}
	return leads, nil
}

// TermSlug converts a search term into the filename stem used by
// FileSource: lowercased, alphanumerics kept, runs of anything else
// collapsed to single hyphens.
func TermSlug(term string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(term) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
