package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of lead-finder",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lead-finder %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
