// Package main provides the entry point for the Verse community client.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "verse",
	Short: "Creativity Verse community client",
	Long:  "verse is a terminal client for the Creativity Verse community: feed, jobs, contests, talents and chat against the Verse REST backend.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
