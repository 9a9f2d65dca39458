package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfscan/spdx-summarizer/internal/db"
	"github.com/lfscan/spdx-summarizer/internal/licenses"
)

// cannedQuerier serves a fixed taxonomy and records adds.
type cannedQuerier struct {
	categories  []db.Category
	licenses    []db.License
	conversions []db.Conversion

	addedConversions []db.Conversion
}

func (q *cannedQuerier) Categories(context.Context) ([]db.Category, error) {
	return q.categories, nil
}

func (q *cannedQuerier) Licenses(context.Context) ([]db.License, error) {
	return q.licenses, nil
}

func (q *cannedQuerier) Conversions(context.Context) ([]db.Conversion, error) {
	return q.conversions, nil
}

func (q *cannedQuerier) AddCategory(context.Context, db.Category) error { return nil }
func (q *cannedQuerier) AddLicense(context.Context, db.License) error   { return nil }

func (q *cannedQuerier) AddConversion(_ context.Context, c db.Conversion) error {
	q.addedConversions = append(q.addedConversions, c)
	return nil
}

func loadedStore(t *testing.T) (*licenses.Store, *cannedQuerier) {
	t.Helper()
	q := &cannedQuerier{
		categories: []db.Category{
			{ID: 1, Name: "Attribution"},
			{ID: 2, Name: "Other"},
		},
		licenses: []db.License{
			{ID: 1, ShortName: "MIT", CategoryID: 1},
		},
	}
	store := licenses.NewStore(q)
	require.NoError(t, store.LoadAll(context.Background()))
	return store, q
}

func TestApplyConversions(t *testing.T) {
	store, q := loadedStore(t)

	require.NoError(t, applyConversions(store, []string{"Expat=MIT"}))

	id, ok := store.Resolve("Expat")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	// the recorded conversion must reach the database on save
	require.NoError(t, store.SaveModified(context.Background()))
	require.Len(t, q.addedConversions, 1)
	assert.Equal(t, "Expat", q.addedConversions[0].OldText)
	assert.Equal(t, 1, q.addedConversions[0].NewLicenseID)
}

func TestApplyConversions_UnknownLicense(t *testing.T) {
	store, _ := loadedStore(t)

	err := applyConversions(store, []string{"Expat=GPL-2.0"})
	assert.ErrorContains(t, err, "no license named")
}

func TestApplyConversions_MalformedMapping(t *testing.T) {
	store, _ := loadedStore(t)

	assert.Error(t, applyConversions(store, []string{"no separator"}))
	assert.Error(t, applyConversions(store, []string{"=MIT"}))
	assert.Error(t, applyConversions(store, []string{"Expat="}))
}

func TestApplyConversions_AlreadyResolvableSkipped(t *testing.T) {
	store, q := loadedStore(t)

	// MIT already resolves by exact match; no conversion is recorded
	require.NoError(t, applyConversions(store, []string{"MIT=MIT"}))
	require.NoError(t, store.SaveModified(context.Background()))
	assert.Empty(t, q.addedConversions)
}

func TestResolveLicenses_ConversionBeforeAutoCreate(t *testing.T) {
	store, _ := loadedStore(t)
	require.NoError(t, applyConversions(store, []string{"Expat=MIT"}))

	rows := []fileRow{
		{FileName: "a.c", RawLicense: "Expat"},
		{FileName: "b.c", RawLicense: "never seen"},
		{FileName: "c.c", RawLicense: ""},
	}
	files := resolveLicenses(store, rows, "Other")

	require.Len(t, files, 3)
	// converted string maps to the existing license, no new entry
	assert.Equal(t, 1, files[0].LicenseID)
	assert.Equal(t, 1, store.LicenseIDFor("MIT"))
	// unknown string gets a fresh license in the fallback category
	assert.Equal(t, files[1].LicenseID, store.LicenseIDFor("never seen"))
	assert.NotEqual(t, 1, files[1].LicenseID)
	// empty license string falls back to the no-license placeholder
	assert.Equal(t, files[2].LicenseID, store.LicenseIDFor("No license found"))
}
