package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lfscan/spdx-summarizer/internal/db"
	"github.com/lfscan/spdx-summarizer/internal/reports"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a CSV or Excel report for one scan",
	RunE:  runReport,
}

var (
	reportDatabaseURL string
	reportScanID      string
	reportCSVFile     string
	reportXLSXFile    string
)

func init() {
	reportCmd.Flags().StringVar(&reportDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	reportCmd.Flags().StringVar(&reportScanID, "scan-id", "", "ID of the scan to report on (required)")
	reportCmd.Flags().StringVar(&reportCSVFile, "csv", "", "Path for a CSV file/license listing")
	reportCmd.Flags().StringVar(&reportXLSXFile, "xlsx", "", "Path for an Excel category report")
	_ = reportCmd.MarkFlagRequired("scan-id")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if reportCSVFile == "" && reportXLSXFile == "" {
		return fmt.Errorf("must provide --csv and/or --xlsx")
	}
	scanID, err := uuid.Parse(reportScanID)
	if err != nil {
		return fmt.Errorf("invalid scan ID %q: %w", reportScanID, err)
	}

	url, err := databaseURL(reportDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer database.Close()

	scan, err := database.GetScan(ctx, scanID)
	if err != nil {
		return err
	}
	if scan == nil {
		return fmt.Errorf("no scan found with ID %s", scanID)
	}

	if reportCSVFile != "" {
		if err := reports.OutputCSVFull(ctx, database, scanID, reportCSVFile); err != nil {
			return err
		}
		fmt.Printf("Wrote CSV listing to %s\n", reportCSVFile)
	}
	if reportXLSXFile != "" {
		if err := reports.OutputExcelFull(ctx, database, scanID, reportXLSXFile); err != nil {
			return err
		}
		fmt.Printf("Wrote Excel report to %s\n", reportXLSXFile)
	}
	return nil
}
