// Package reports renders scan results as CSV listings and Excel
// workbooks.
package reports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/lfscan/spdx-summarizer/internal/analysis"
	"github.com/lfscan/spdx-summarizer/internal/db"
)

// WriteCSVListing writes a filename/license CSV listing, sorted by
// filename, with a header row.
func WriteCSVListing(w io.Writer, records map[string]string) error {
	filenames := make([]string, 0, len(records))
	for filename := range records {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"File path", "License"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, filename := range filenames {
		if err := cw.Write([]string{filename, records[filename]}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// OutputCSVFull writes the full file/license listing for one scan to
// csvPath, after reclassifying no-license files. Files under .git are
// excluded.
func OutputCSVFull(ctx context.Context, database *db.DB, scanID uuid.UUID, csvPath string) error {
	records, err := database.LicenseFilesForScan(ctx, scanID, true)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no scan results found for scan %s", scanID)
	}

	ignoredExts, err := ignoredExtensions(ctx, database)
	if err != nil {
		return err
	}
	analysis.ReclassifyIgnoredExtensions(records, ignoredExts)
	analysis.ReclassifyVendorFiles(records)

	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", csvPath, err)
	}
	defer f.Close()

	if err := WriteCSVListing(f, records); err != nil {
		return fmt.Errorf("failed to write CSV listing to %s: %w", csvPath, err)
	}
	return f.Close()
}

func ignoredExtensions(ctx context.Context, database *db.DB) ([]string, error) {
	value, err := database.ConfigValue(ctx, "ignore_extensions")
	if err != nil {
		return nil, err
	}
	return analysis.ParseIgnoredExtensions(value), nil
}
