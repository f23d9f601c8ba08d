// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Up14/Lead-Finder/internal/cache"
	"github.com/Up14/Lead-Finder/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the search result cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCacheFromFlags(cmd)
		if err != nil {
			return err
		}

		info := s.Stats()
		fmt.Printf("Path:          %s\n", info.Path)
		fmt.Printf("Entries:       %d\n", info.Entries)
		fmt.Printf("Size:          %.1f KB\n", float64(info.SizeBytes)/1024)
		fmt.Printf("Total queries: %d\n", info.TotalQueries)
		fmt.Printf("Created:       %s\n", info.Created)
		if info.LastUpdated != "" {
			fmt.Printf("Last updated:  %s\n", info.LastUpdated)
		}
		if info.LastCleanup != "" {
			fmt.Printf("Last cleanup:  %s\n", info.LastCleanup)
		}
		fmt.Printf("Limits:        %d entries, %d MB, %d day expiry\n",
			info.MaxEntries, info.MaxSizeBytes/(1024*1024), info.ExpiryDays)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [key]",
	Short: "Clear the whole cache, or a single entry by key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openCacheFromFlags(cmd)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			if !s.ClearKey(args[0]) {
				return fmt.Errorf("clearing cache entry %q failed", args[0])
			}
			fmt.Printf("Cleared cache entry %q\n", args[0])
			return nil
		}

		if !s.ClearAll() {
			return fmt.Errorf("clearing cache failed")
		}
		fmt.Println("Cache cleared")
		return nil
	},
}

func openCacheFromFlags(cmd *cobra.Command) (*cache.Store, error) {
	path, _ := cmd.Flags().GetString("cache-path")
	s, err := cache.Open(types.CacheConfig{Path: path}, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	return s, nil
}

func init() {
	cacheCmd.PersistentFlags().String("cache-path", "data/cache/search_results.json", "search cache file")

	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}
