package licenses

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfscan/spdx-summarizer/internal/db"
)

// fakeQuerier records adds and serves canned lists.
type fakeQuerier struct {
	categories  []db.Category
	licenses    []db.License
	conversions []db.Conversion

	addedCategories  []db.Category
	addedLicenses    []db.License
	addedConversions []db.Conversion
}

func (f *fakeQuerier) Categories(context.Context) ([]db.Category, error) {
	return f.categories, nil
}

func (f *fakeQuerier) Licenses(context.Context) ([]db.License, error) {
	return f.licenses, nil
}

func (f *fakeQuerier) Conversions(context.Context) ([]db.Conversion, error) {
	return f.conversions, nil
}

func (f *fakeQuerier) AddCategory(_ context.Context, c db.Category) error {
	f.addedCategories = append(f.addedCategories, c)
	return nil
}

func (f *fakeQuerier) AddLicense(_ context.Context, l db.License) error {
	f.addedLicenses = append(f.addedLicenses, l)
	return nil
}

func (f *fakeQuerier) AddConversion(_ context.Context, c db.Conversion) error {
	f.addedConversions = append(f.addedConversions, c)
	return nil
}

func seededStore(t *testing.T) (*Store, *fakeQuerier) {
	t.Helper()
	q := &fakeQuerier{
		categories: []db.Category{
			{ID: 1, Name: "Attribution"},
			{ID: 2, Name: "No license found"},
		},
		licenses: []db.License{
			{ID: 1, ShortName: "MIT", CategoryID: 1},
			{ID: 2, ShortName: "No license found", CategoryID: 2},
		},
		conversions: []db.Conversion{
			{ID: 1, OldText: "Expat", NewLicenseID: 1},
		},
	}
	s := NewStore(q)
	require.NoError(t, s.LoadAll(context.Background()))
	return s, q
}

func TestStore_Lookups(t *testing.T) {
	s, _ := seededStore(t)

	assert.Equal(t, 1, s.LicenseIDFor("MIT"))
	assert.Equal(t, 0, s.LicenseIDFor("GPL-2.0"))
	assert.Equal(t, 1, s.CategoryIDFor("Attribution"))
	assert.Equal(t, 0, s.CategoryIDFor("Copyleft"))
}

func TestStore_Resolve(t *testing.T) {
	s, _ := seededStore(t)

	// conversion applies before exact match
	id, ok := s.Resolve("Expat")
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	// exact short-name match
	id, ok = s.Resolve("MIT")
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = s.Resolve("never seen before")
	assert.False(t, ok)
}

func TestStore_CreateAllocatesNextID(t *testing.T) {
	s, _ := seededStore(t)

	catID := s.CreateCategory("Copyleft")
	assert.Equal(t, 3, catID)
	assert.Equal(t, 3, s.CategoryIDFor("Copyleft"))

	licID := s.CreateLicense("GPL-2.0", catID)
	assert.Equal(t, 3, licID)
	assert.Equal(t, 3, s.LicenseIDFor("GPL-2.0"))

	convID := s.CreateConversion("GPLv2", licID)
	assert.Equal(t, 2, convID)

	id, ok := s.Resolve("GPLv2")
	assert.True(t, ok)
	assert.Equal(t, licID, id)
}

func TestStore_SaveModifiedWritesOnlyNewEntries(t *testing.T) {
	s, q := seededStore(t)

	catID := s.CreateCategory("Copyleft")
	licID := s.CreateLicense("GPL-2.0", catID)
	s.CreateConversion("GPLv2", licID)

	require.NoError(t, s.SaveModified(context.Background()))

	require.Len(t, q.addedCategories, 1)
	assert.Equal(t, db.Category{ID: catID, Name: "Copyleft"}, q.addedCategories[0])
	require.Len(t, q.addedLicenses, 1)
	assert.Equal(t, "GPL-2.0", q.addedLicenses[0].ShortName)
	require.Len(t, q.addedConversions, 1)
	assert.Equal(t, "GPLv2", q.addedConversions[0].OldText)

	// a second save must not write anything again
	require.NoError(t, s.SaveModified(context.Background()))
	assert.Len(t, q.addedCategories, 1)
	assert.Len(t, q.addedLicenses, 1)
	assert.Len(t, q.addedConversions, 1)
}

func TestStore_EmptyStoreCreatesFromOne(t *testing.T) {
	s := NewStore(&fakeQuerier{})
	require.NoError(t, s.LoadAll(context.Background()))

	assert.Equal(t, 1, s.CreateCategory("Other"))
	assert.Equal(t, 1, s.CreateLicense("MIT", 1))
	assert.Equal(t, 1, s.CreateConversion("Expat", 1))
}
