// Package licenses maintains the in-memory set of known licenses,
// their categories, and raw-text conversions, kept in sync with the
// database. New entries created while importing a scan are held in
// memory with a modified flag until SaveModified writes them out.
package licenses

import (
	"context"
	"fmt"

	"github.com/lfscan/spdx-summarizer/internal/db"
)

// Querier is the subset of database operations the store needs.
type Querier interface {
	Categories(ctx context.Context) ([]db.Category, error)
	Licenses(ctx context.Context) ([]db.License, error)
	Conversions(ctx context.Context) ([]db.Conversion, error)
	AddCategory(ctx context.Context, c db.Category) error
	AddLicense(ctx context.Context, l db.License) error
	AddConversion(ctx context.Context, c db.Conversion) error
}

// Category is a license category tracked by the store.
type Category struct {
	ID       int
	Name     string
	Modified bool
}

// License is a known license tracked by the store.
type License struct {
	ID         int
	ShortName  string
	CategoryID int
	Modified   bool
}

// Conversion maps raw scan-output license text to a license ID.
type Conversion struct {
	ID           int
	OldText      string
	NewLicenseID int
	Modified     bool
}

// Store holds the in-memory license bookkeeping for one import.
type Store struct {
	q           Querier
	categories  map[int]*Category
	licenses    map[int]*License
	conversions map[int]*Conversion
}

// NewStore returns an empty store backed by q.
func NewStore(q Querier) *Store {
	return &Store{
		q:           q,
		categories:  make(map[int]*Category),
		licenses:    make(map[int]*License),
		conversions: make(map[int]*Conversion),
	}
}

// LoadAll replaces the in-memory categories, licenses and conversions
// with the database contents.
func (s *Store) LoadAll(ctx context.Context) error {
	cats, err := s.q.Categories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}
	s.categories = make(map[int]*Category, len(cats))
	for _, c := range cats {
		s.categories[c.ID] = &Category{ID: c.ID, Name: c.Name}
	}

	lics, err := s.q.Licenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load licenses: %w", err)
	}
	s.licenses = make(map[int]*License, len(lics))
	for _, l := range lics {
		s.licenses[l.ID] = &License{ID: l.ID, ShortName: l.ShortName, CategoryID: l.CategoryID}
	}

	convs, err := s.q.Conversions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load conversions: %w", err)
	}
	s.conversions = make(map[int]*Conversion, len(convs))
	for _, c := range convs {
		s.conversions[c.ID] = &Conversion{ID: c.ID, OldText: c.OldText, NewLicenseID: c.NewLicenseID}
	}

	return nil
}

// LicenseIDFor returns the ID of the license with this short name, or
// 0 if the store does not know it.
func (s *Store) LicenseIDFor(shortName string) int {
	for _, l := range s.licenses {
		if l.ShortName == shortName {
			return l.ID
		}
	}
	return 0
}

// CategoryIDFor returns the ID of the category with this name, or 0
// if the store does not know it.
func (s *Store) CategoryIDFor(name string) int {
	for _, c := range s.categories {
		if c.Name == name {
			return c.ID
		}
	}
	return 0
}

// Resolve maps a raw license string from scan output to a license ID,
// applying conversions first and then exact short-name match.
func (s *Store) Resolve(raw string) (int, bool) {
	for _, conv := range s.conversions {
		if conv.OldText == raw {
			return conv.NewLicenseID, true
		}
	}
	if id := s.LicenseIDFor(raw); id != 0 {
		return id, true
	}
	return 0, false
}

// CreateCategory adds a category in memory and returns its new ID.
func (s *Store) CreateCategory(name string) int {
	id := maxID(s.categories, func(c *Category) int { return c.ID }) + 1
	s.categories[id] = &Category{ID: id, Name: name, Modified: true}
	return id
}

// CreateLicense adds a license in memory and returns its new ID.
func (s *Store) CreateLicense(shortName string, categoryID int) int {
	id := maxID(s.licenses, func(l *License) int { return l.ID }) + 1
	s.licenses[id] = &License{ID: id, ShortName: shortName, CategoryID: categoryID, Modified: true}
	return id
}

// CreateConversion adds a conversion in memory and returns its new ID.
func (s *Store) CreateConversion(oldText string, newLicenseID int) int {
	id := maxID(s.conversions, func(c *Conversion) int { return c.ID }) + 1
	s.conversions[id] = &Conversion{ID: id, OldText: oldText, NewLicenseID: newLicenseID, Modified: true}
	return id
}

// SaveModified writes every in-memory entry flagged as modified to the
// database and clears the flags. Categories go first, then licenses,
// then conversions, honoring the foreign-key order.
func (s *Store) SaveModified(ctx context.Context) error {
	for _, c := range s.categories {
		if !c.Modified {
			continue
		}
		if err := s.q.AddCategory(ctx, db.Category{ID: c.ID, Name: c.Name}); err != nil {
			return err
		}
		c.Modified = false
	}
	for _, l := range s.licenses {
		if !l.Modified {
			continue
		}
		if err := s.q.AddLicense(ctx, db.License{ID: l.ID, ShortName: l.ShortName, CategoryID: l.CategoryID}); err != nil {
			return err
		}
		l.Modified = false
	}
	for _, c := range s.conversions {
		if !c.Modified {
			continue
		}
		if err := s.q.AddConversion(ctx, db.Conversion{ID: c.ID, OldText: c.OldText, NewLicenseID: c.NewLicenseID}); err != nil {
			return err
		}
		c.Modified = false
	}
	return nil
}

func maxID[T any](m map[int]*T, id func(*T) int) int {
	max := 0
	for _, v := range m {
		if id(v) > max {
			max = id(v)
		}
	}
	return max
}
