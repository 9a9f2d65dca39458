package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/lfscan/spdx-summarizer/internal/config"
	"github.com/lfscan/spdx-summarizer/internal/db"
	"github.com/lfscan/spdx-summarizer/internal/licenses"
	"github.com/lfscan/spdx-summarizer/internal/tagvalue"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import an SPDX tag:value scan report into the database",
	Long:  "Import parses an SPDX tag:value report (generic or FOSSology dialect), strips the common path prefix, resolves license strings against the known set, and stores one row per file.",
	RunE:  runImport,
}

var (
	importDatabaseURL string
	importReportFile  string
	importFossology   bool
	importDate        string
	importDesc        string
	importNewCategory string
	importConversions []string
)

// importParams carries the validated import inputs.
type importParams struct {
	Report      string `validate:"required"`
	Date        string `validate:"required,datetime=2006-01-02"`
	NewCategory string `validate:"required"`
}

// fileRow is one parsed file record with its raw license string, not
// yet resolved to a license ID.
type fileRow struct {
	FileName   string
	RawLicense string
	MD5        string
	SHA1       string
	SHA256     string
}

func init() {
	importCmd.Flags().StringVar(&importDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	importCmd.Flags().StringVar(&importReportFile, "report", "", "Path to SPDX tag:value report (required)")
	importCmd.Flags().BoolVar(&importFossology, "fossology", false, "Parse the FOSSology sentinel-delimited dialect")
	importCmd.Flags().StringVar(&importDate, "date", "", "Date of the scan, YYYY-MM-DD (required)")
	importCmd.Flags().StringVar(&importDesc, "desc", "", "Brief description of the scan")
	importCmd.Flags().StringVar(&importNewCategory, "new-license-category", "Other", "Category for license strings not seen before")
	importCmd.Flags().StringArrayVar(&importConversions, "convert", nil, "Map a raw license string to an existing license, as 'old text=Short-Name' (repeatable)")
	_ = importCmd.MarkFlagRequired("report")
	_ = importCmd.MarkFlagRequired("date")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	params := importParams{
		Report:      importReportFile,
		Date:        importDate,
		NewCategory: importNewCategory,
	}
	if err := validator.New().Struct(params); err != nil {
		return fmt.Errorf("invalid import parameters: %w", err)
	}
	scanDate, _ := time.Parse("2006-01-02", params.Date)

	rows, prefix, err := loadReport(params.Report, importFossology, true)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no file records found in %s", params.Report)
	}
	fmt.Printf("Successfully parsed report; found %d file records.\n", len(rows))
	if prefix != "" {
		fmt.Printf("Removed common prefix %s\n", prefix)
	}

	url, err := databaseURL(importDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := checkDatabaseVersion(ctx, database); err != nil {
		return err
	}

	store := licenses.NewStore(database)
	if err := store.LoadAll(ctx); err != nil {
		return err
	}
	if err := applyConversions(store, importConversions); err != nil {
		return err
	}
	files := resolveLicenses(store, rows, params.NewCategory)
	if err := store.SaveModified(ctx); err != nil {
		return err
	}

	scanID, err := database.AddScan(ctx, scanDate, importDesc)
	if err != nil {
		return err
	}
	n, err := database.AddFiles(ctx, scanID, files)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d files as scan %s.\n", n, scanID)
	return nil
}

// loadReport parses the report in the requested dialect and returns
// file rows plus the stripped common path prefix ("" when stripPrefix
// is false). The FOSSology shape has no SHA256 field; those rows keep
// it empty.
func loadReport(path string, fossology, stripPrefix bool) ([]fileRow, string, error) {
	var prefix string

	if fossology {
		records, err := tagvalue.ParseFossologyReport(path)
		if err != nil {
			return nil, "", err
		}
		if stripPrefix {
			prefix = tagvalue.StripCommonPrefixFossology(records)
		}
		rows := make([]fileRow, len(records))
		for i, r := range records {
			rows[i] = fileRow{FileName: r.FileName, RawLicense: r.License, MD5: r.MD5, SHA1: r.SHA1}
		}
		return rows, prefix, nil
	}

	records, err := tagvalue.ParseReport(path)
	if err != nil {
		return nil, "", err
	}
	if stripPrefix {
		prefix = tagvalue.StripCommonPrefix(records)
	}
	rows := make([]fileRow, len(records))
	for i, r := range records {
		rows[i] = fileRow{FileName: r.FileName, RawLicense: r.License, MD5: r.MD5, SHA1: r.SHA1, SHA256: r.SHA256}
	}
	return rows, prefix, nil
}

// applyConversions records one conversion per "old text=Short-Name"
// mapping, so the raw string resolves to an existing license on this
// and future imports. Mappings whose raw text already resolves are
// skipped.
func applyConversions(store *licenses.Store, mappings []string) error {
	for _, m := range mappings {
		oldText, shortName, ok := strings.Cut(m, "=")
		if !ok || oldText == "" || shortName == "" {
			return fmt.Errorf("invalid --convert mapping %q: want 'old text=Short-Name'", m)
		}
		licID := store.LicenseIDFor(shortName)
		if licID == 0 {
			return fmt.Errorf("cannot convert %q: no license named %q", oldText, shortName)
		}
		if _, ok := store.Resolve(oldText); ok {
			continue
		}
		store.CreateConversion(oldText, licID)
		fmt.Printf("Mapped %q to license %q\n", oldText, shortName)
	}
	return nil
}

// resolveLicenses maps each row's raw license string to a license ID,
// creating licenses for unknown strings in the fallback category, and
// returns the rows ready for bulk insert.
func resolveLicenses(store *licenses.Store, rows []fileRow, newCategory string) []db.File {
	catID := store.CategoryIDFor(newCategory)
	files := make([]db.File, len(rows))
	for i, row := range rows {
		raw := row.RawLicense
		if raw == "" {
			raw = "No license found"
		}
		id, ok := store.Resolve(raw)
		if !ok {
			if catID == 0 {
				catID = store.CreateCategory(newCategory)
			}
			id = store.CreateLicense(raw, catID)
			fmt.Printf("Created new license %q in category %q\n", raw, newCategory)
		}
		files[i] = db.File{
			FileName:  row.FileName,
			LicenseID: id,
			MD5:       row.MD5,
			SHA1:      row.SHA1,
			SHA256:    row.SHA256,
		}
	}
	return files
}

// checkDatabaseVersion refuses to import into a database that is
// uninitialized, needs a migration, or was written by a newer
// summarizer.
func checkDatabaseVersion(ctx context.Context, database *db.DB) error {
	if !database.IsInitialized(ctx) {
		return fmt.Errorf("database is not initialized; run 'spdxsum init' first")
	}
	dbVersion, err := database.ConfigValue(ctx, "version")
	if err != nil {
		return err
	}
	tooOld, err := config.DBTooOld(dbVersion)
	if err != nil {
		return err
	}
	if tooOld {
		return fmt.Errorf("database version %s predates the last schema change; migrate it first", dbVersion)
	}
	tooNew, err := config.DBTooNew(dbVersion)
	if err != nil {
		return err
	}
	if tooNew {
		return fmt.Errorf("database version %s is newer than this summarizer (%s)", dbVersion, config.Version)
	}
	return nil
}
