package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lfscan/spdx-summarizer/internal/config"
	"github.com/lfscan/spdx-summarizer/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema and seed it from a project config",
	RunE:  runInit,
}

var (
	initDatabaseURL string
	initConfigFile  string
)

func init() {
	initCmd.Flags().StringVar(&initDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL)")
	initCmd.Flags().StringVar(&initConfigFile, "config", "", "Path to project seed config JSON (required)")
	_ = initCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	seed, err := config.LoadSeedConfig(initConfigFile)
	if err != nil {
		return err
	}

	url, err := databaseURL(initDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer database.Close()

	if database.IsInitialized(ctx) {
		return fmt.Errorf("database is already initialized")
	}
	if err := database.InitSchema(ctx); err != nil {
		return err
	}
	if err := seedDatabase(ctx, database, seed); err != nil {
		return err
	}

	fmt.Printf("Initialized database for project %s\n", seed.Project())
	return nil
}

// seedDatabase loads the project settings, category/license taxonomy
// and known conversions from the seed config. Categories and licenses
// must land before conversions, which reference license IDs.
func seedDatabase(ctx context.Context, database *db.DB, seed *config.SeedConfig) error {
	for key, value := range seed.Config {
		if err := database.SetConfigValue(ctx, key, value); err != nil {
			return err
		}
	}

	licenseIDs := make(map[string]int)
	nextLicenseID := 1
	for _, cat := range seed.Categories {
		if err := database.AddCategory(ctx, db.Category{ID: cat.ID, Name: cat.Name}); err != nil {
			return err
		}
		for _, shortName := range cat.Licenses {
			lic := db.License{ID: nextLicenseID, ShortName: shortName, CategoryID: cat.ID}
			if err := database.AddLicense(ctx, lic); err != nil {
				return err
			}
			licenseIDs[shortName] = nextLicenseID
			nextLicenseID++
		}
	}

	nextConversionID := 1
	for oldText, shortName := range seed.Conversions {
		licID, ok := licenseIDs[shortName]
		if !ok {
			return fmt.Errorf("conversion %q maps to unknown license %q", oldText, shortName)
		}
		conv := db.Conversion{ID: nextConversionID, OldText: oldText, NewLicenseID: licID}
		if err := database.AddConversion(ctx, conv); err != nil {
			return err
		}
		nextConversionID++
	}

	if err := database.SetConfigValue(ctx, "version", config.Version); err != nil {
		return err
	}
	return database.SetConfigValue(ctx, "initialized", "yes")
}
