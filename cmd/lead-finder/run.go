// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Up14/Lead-Finder/internal/cache"
	"github.com/Up14/Lead-Finder/internal/credits"
	"github.com/Up14/Lead-Finder/internal/pipeline"
	"github.com/Up14/Lead-Finder/internal/store"
	"github.com/Up14/Lead-Finder/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the lead pipeline: identify, deduplicate, score, rank",
	Long: `Run executes a batch end to end. Search terms come from a batch file
(--batch) or directly from --terms. Results for each term are read from
the cache when fresh, otherwise from the configured source directory
where external collectors drop their output. Identified leads are
deduplicated, scored against the weighted rules, and ranked.

The ranked batch is printed as a table (or JSON with --json), written
back to the batch file, and optionally saved to the lead store with
--save.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	batchPath, _ := cmd.Flags().GetString("batch")
	termsFlag, _ := cmd.Flags().GetString("terms")

	bf, err := loadBatch(batchPath, termsFlag, cmd)
	if err != nil {
		return err
	}

	cacheStore, err := openCache(cmd)
	if err != nil {
		return err
	}

	creditsPath, _ := cmd.Flags().GetString("credits-path")
	ledger, err := credits.Open(types.CreditsConfig{Path: creditsPath}, os.Stderr)
	if err != nil {
		return fmt.Errorf("opening credits ledger: %w", err)
	}

	sourceDir, _ := cmd.Flags().GetString("source-dir")
	source := pipeline.NewFileSource(sourceDir)

	if err := pipeline.Run(context.Background(), bf, source, cacheStore, ledger, os.Stdout); err != nil {
		return err
	}

	if batchPath != "" {
		if err := pipeline.WriteBatchFile(batchPath, bf); err != nil {
			return fmt.Errorf("saving batch results: %w", err)
		}
	}

	if saveName, _ := cmd.Flags().GetString("save"); saveName != "" {
		if err := saveToStore(cmd, saveName, bf.Leads); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "saved %d leads as batch %q\n", len(bf.Leads), saveName)
	}

	return printLeads(cmd, bf.Leads)
}

// loadBatch builds the batch definition from a file or from the
// --terms flag.
func loadBatch(batchPath, termsFlag string, cmd *cobra.Command) (*pipeline.BatchFile, error) {
	if batchPath != "" {
		return pipeline.ReadBatchFile(batchPath)
	}
	if termsFlag == "" {
		return nil, fmt.Errorf("search terms required: provide --batch or --terms")
	}

	var terms []string
	for _, t := range strings.Split(termsFlag, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}

	resultsPerTerm, _ := cmd.Flags().GetInt("results-per-term")
	yearsBack, _ := cmd.Flags().GetInt("years-back")
	return &pipeline.BatchFile{
		SearchTerms: terms,
		Config: types.IdentifyConfig{
			ResultsPerTerm: resultsPerTerm,
			YearsBack:      yearsBack,
		},
	}, nil
}

func openCache(cmd *cobra.Command) (*cache.Store, error) {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		return nil, nil
	}
	cachePath, _ := cmd.Flags().GetString("cache-path")
	s, err := cache.Open(types.CacheConfig{Path: cachePath}, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return s, nil
}

func saveToStore(cmd *cobra.Command, batch string, leads []types.Lead) error {
	leadsDir, _ := cmd.Flags().GetString("leads-dir")
	st, err := store.NewStore(types.StoreConfig{LeadsDir: leadsDir})
	if err != nil {
		return fmt.Errorf("opening lead store: %w", err)
	}
	defer st.Close()

	return st.Save(context.Background(), batch, leads)
}

func printLeads(cmd *cobra.Command, leads []types.Lead) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(leads)
	}

	if len(leads) == 0 {
		fmt.Println("No leads found.")
		return nil
	}

	top, _ := cmd.Flags().GetInt("top")
	if top > 0 && len(leads) > top {
		leads = leads[:top]
	}
	fmt.Println(renderLeadTable(leads))
	return nil
}

func init() {
	runCmd.Flags().String("batch", "", "batch file with search terms (results are written back)")
	runCmd.Flags().String("terms", "", "comma-separated search terms (alternative to --batch)")
	runCmd.Flags().Int("results-per-term", 50, "results requested per term")
	runCmd.Flags().Int("years-back", 2, "publication lookback window in years")
	runCmd.Flags().String("source-dir", "data/sources", "directory of per-term result files")
	runCmd.Flags().String("cache-path", "data/cache/search_results.json", "search cache file")
	runCmd.Flags().Bool("no-cache", false, "bypass the search cache")
	runCmd.Flags().String("credits-path", "data/cache/api_credits.json", "API credit ledger file")
	runCmd.Flags().String("save", "", "save ranked leads to the store under this batch name")
	runCmd.Flags().String("leads-dir", "leads", "base directory for the lead store")
	runCmd.Flags().Int("top", 20, "number of leads to display (0 = all)")
	runCmd.Flags().Bool("json", false, "output leads as JSON")

	rootCmd.AddCommand(runCmd)
}
