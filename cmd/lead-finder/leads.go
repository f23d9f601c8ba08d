// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Up14/Lead-Finder/internal/store"
	"github.com/Up14/Lead-Finder/pkg/types"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Query and export the ranked lead store",
}

var leadsQueryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query stored leads with tier, score, and hub filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStoreFromFlags(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		results, err := st.Query(context.Background(), storeOptsFromFlags(cmd))
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}

		if len(results) == 0 {
			fmt.Println("No leads found.")
			return nil
		}
		leads := make([]types.Lead, len(results))
		for i, r := range results {
			leads[i] = r.Lead
		}
		fmt.Println(renderLeadTable(leads))
		return nil
	},
}

var leadsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored leads to YAML, JSON, or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		st, err := openStoreFromFlags(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := storeOptsFromFlags(cmd)
		leadsDir, _ := cmd.Flags().GetString("leads-dir")

		switch format {
		case "yaml", "":
			if err := st.ExportYAML(context.Background(), opts); err != nil {
				return err
			}
			fmt.Printf("Exported to %s/export.yaml\n", leadsDir)
		case "json":
			if err := st.ExportJSON(context.Background(), opts); err != nil {
				return err
			}
			fmt.Printf("Exported to %s/export.json\n", leadsDir)
		case "csv":
			if err := st.ExportCSV(context.Background(), opts); err != nil {
				return err
			}
			fmt.Printf("Exported to %s/export.csv\n", leadsDir)
		default:
			return fmt.Errorf("unsupported format %q: use yaml, json, or csv", format)
		}
		return nil
	},
}

var leadsBatchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List stored batches, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStoreFromFlags(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		batches, err := st.Batches(context.Background())
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			fmt.Println("No batches stored yet.")
			return nil
		}
		for _, b := range batches {
			fmt.Println(b)
		}
		return nil
	},
}

func openStoreFromFlags(cmd *cobra.Command) (*store.Store, error) {
	leadsDir, _ := cmd.Flags().GetString("leads-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	st, err := store.NewStore(types.StoreConfig{
		LeadsDir:   leadsDir,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("opening lead store: %w", err)
	}
	return st, nil
}

func storeOptsFromFlags(cmd *cobra.Command) store.QueryOptions {
	batch, _ := cmd.Flags().GetString("batch")
	tier, _ := cmd.Flags().GetString("tier")
	minScore, _ := cmd.Flags().GetInt("min-score")
	hubOnly, _ := cmd.Flags().GetBool("hub-only")
	limit, _ := cmd.Flags().GetInt("limit")

	return store.QueryOptions{
		Batch:      batch,
		Tier:       types.PriorityLevel(tier),
		MinScore:   minScore,
		HubOnly:    hubOnly,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	leadsCmd.PersistentFlags().String("leads-dir", "leads", "base directory for the lead store")
	leadsCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")
	leadsCmd.PersistentFlags().String("batch", "", "filter by batch name")
	leadsCmd.PersistentFlags().String("tier", "", "filter by priority tier: High, Medium, Low")
	leadsCmd.PersistentFlags().Int("min-score", 0, "drop leads below this propensity score")
	leadsCmd.PersistentFlags().Bool("hub-only", false, "keep only leads in a named hub region")
	leadsCmd.PersistentFlags().Int("limit", 0, "maximum results (0 = use default)")

	// Query flags.
	leadsQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	leadsExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or csv")

	// Wire subcommands.
	leadsCmd.AddCommand(leadsQueryCmd)
	leadsCmd.AddCommand(leadsExportCmd)
	leadsCmd.AddCommand(leadsBatchesCmd)

	rootCmd.AddCommand(leadsCmd)
}
