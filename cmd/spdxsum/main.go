// Package main provides the spdxsum CLI for importing and reporting
// on SPDX license-scan results.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spdxsum",
	Short: "SPDX license-scan summarizer",
	Long:  "spdxsum imports SPDX tag:value license-scan reports into a PostgreSQL database and produces CSV and Excel summaries, license-category breakdowns, and report-vs-archive comparisons.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// databaseURL resolves the connection string from a flag or the
// DATABASE_URL environment variable.
func databaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("DATABASE_URL"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("database URL is required (set DATABASE_URL environment variable or use --db-url)")
}
