// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Up14/Lead-Finder/internal/credits"
	"github.com/Up14/Lead-Finder/pkg/types"
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Inspect and manage API call budgets",
}

var creditsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show remaining credit for every tracked API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := openLedgerFromFlags(cmd)
		if err != nil {
			return err
		}

		names, accounts := ledger.All()
		if len(names) == 0 {
			fmt.Println("No APIs tracked yet.")
			return nil
		}

		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"API", "Made", "Remaining", "Quota", "Updated"})
		for _, name := range names {
			acct := accounts[name]
			tw.AppendRow(table.Row{
				name,
				strconv.Itoa(acct.CallsMade),
				strconv.Itoa(acct.CallsRemaining),
				strconv.Itoa(acct.QuotaLimit),
				acct.LastUpdated,
			})
		}
		fmt.Println(tw.Render())
		return nil
	},
}

var creditsResetCmd = &cobra.Command{
	Use:   "reset <api>",
	Short: "Restore an API to its full quota",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := openLedgerFromFlags(cmd)
		if err != nil {
			return err
		}

		if _, ok := ledger.Info(args[0]); !ok {
			return fmt.Errorf("API %q is not tracked", args[0])
		}
		ledger.Reset(args[0])
		fmt.Printf("Reset %s\n", args[0])
		return nil
	},
}

var creditsSetQuotaCmd = &cobra.Command{
	Use:   "set-quota <api> <quota>",
	Short: "Set a new quota for an API",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quota, err := strconv.Atoi(args[1])
		if err != nil || quota < 0 {
			return fmt.Errorf("invalid quota %q: must be a non-negative integer", args[1])
		}

		ledger, err := openLedgerFromFlags(cmd)
		if err != nil {
			return err
		}

		ledger.UpdateQuota(args[0], quota)
		fmt.Printf("Set %s quota to %d\n", args[0], quota)
		return nil
	},
}

func openLedgerFromFlags(cmd *cobra.Command) (*credits.Ledger, error) {
	path, _ := cmd.Flags().GetString("credits-path")
	ledger, err := credits.Open(types.CreditsConfig{Path: path}, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("opening credits ledger: %w", err)
	}
	return ledger, nil
}

func init() {
	creditsCmd.PersistentFlags().String("credits-path", "data/cache/api_credits.json", "API credit ledger file")

	creditsCmd.AddCommand(creditsShowCmd)
	creditsCmd.AddCommand(creditsResetCmd)
	creditsCmd.AddCommand(creditsSetQuotaCmd)

	rootCmd.AddCommand(creditsCmd)
}
