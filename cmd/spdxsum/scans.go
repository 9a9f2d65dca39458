package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfscan/spdx-summarizer/internal/db"
)

var scansCmd = &cobra.Command{
	Use:   "scans",
	Short: "List imported scans",
	RunE:  runScans,
}

var scansDatabaseURL string

func init() {
	scansCmd.Flags().StringVar(&scansDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")

	rootCmd.AddCommand(scansCmd)
}

func runScans(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	url, err := databaseURL(scansDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer database.Close()

	scans, err := database.Scans(ctx)
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		fmt.Println("No scans have been imported yet.")
		return nil
	}

	for _, s := range scans {
		fmt.Printf("%s  %s  %s\n", s.ID, s.ScanDate.Format("2006-01-02"), s.Description)
	}
	return nil
}
