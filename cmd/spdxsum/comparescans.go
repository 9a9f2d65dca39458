package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lfscan/spdx-summarizer/internal/db"
	"github.com/lfscan/spdx-summarizer/internal/reports"
)

var compareScansCmd = &cobra.Command{
	Use:   "compare-scans",
	Short: "Write an Excel report comparing two scans",
	Long:  "Compare-scans matches the file listings of two scans and writes an Excel workbook with the files whose license changed, the files only in the first scan, and the files only in the second.",
	RunE:  runCompareScans,
}

var (
	compareScansDatabaseURL string
	compareScansFirstID     string
	compareScansSecondID    string
	compareScansXLSXFile    string
)

func init() {
	compareScansCmd.Flags().StringVar(&compareScansDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	compareScansCmd.Flags().StringVar(&compareScansFirstID, "first", "", "ID of the first scan (required)")
	compareScansCmd.Flags().StringVar(&compareScansSecondID, "second", "", "ID of the second scan (required)")
	compareScansCmd.Flags().StringVar(&compareScansXLSXFile, "xlsx", "", "Path for the Excel comparison report (required)")
	_ = compareScansCmd.MarkFlagRequired("first")
	_ = compareScansCmd.MarkFlagRequired("second")
	_ = compareScansCmd.MarkFlagRequired("xlsx")

	rootCmd.AddCommand(compareScansCmd)
}

func runCompareScans(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	firstID, err := uuid.Parse(compareScansFirstID)
	if err != nil {
		return fmt.Errorf("invalid scan ID %q: %w", compareScansFirstID, err)
	}
	secondID, err := uuid.Parse(compareScansSecondID)
	if err != nil {
		return fmt.Errorf("invalid scan ID %q: %w", compareScansSecondID, err)
	}
	if firstID == secondID {
		return fmt.Errorf("must select two different scans")
	}

	url, err := databaseURL(compareScansDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer database.Close()

	for _, id := range []uuid.UUID{firstID, secondID} {
		scan, err := database.GetScan(ctx, id)
		if err != nil {
			return err
		}
		if scan == nil {
			return fmt.Errorf("no scan found with ID %s", id)
		}
	}

	if err := reports.OutputExcelComparison(ctx, database, firstID, secondID, compareScansXLSXFile); err != nil {
		return err
	}
	fmt.Printf("Wrote Excel comparison to %s\n", compareScansXLSXFile)
	return nil
}
