package db

import (
	"context"
	"fmt"
)

// Categories returns all license categories ordered by ID.
func (db *DB) Categories(ctx context.Context) ([]Category, error) {
	rows, err := db.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return cats, nil
}

// AddCategory inserts a category with an explicit ID.
func (db *DB) AddCategory(ctx context.Context, c Category) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`, c.ID, c.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to add category %s: %w", c.Name, err)
	}
	return nil
}

// Licenses returns all known licenses ordered by ID.
func (db *DB) Licenses(ctx context.Context) ([]License, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, short_name, category_id FROM licenses ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer rows.Close()

	var lics []License
	for rows.Next() {
		var l License
		if err := rows.Scan(&l.ID, &l.ShortName, &l.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan license row: %w", err)
		}
		lics = append(lics, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read licenses: %w", err)
	}
	return lics, nil
}

// AddLicense inserts a license with an explicit ID.
func (db *DB) AddLicense(ctx context.Context, l License) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO licenses (id, short_name, category_id) VALUES ($1, $2, $3)`,
		l.ID, l.ShortName, l.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to add license %s: %w", l.ShortName, err)
	}
	return nil
}

// Conversions returns all license-text conversions ordered by ID.
func (db *DB) Conversions(ctx context.Context) ([]Conversion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, old_text, new_license_id FROM conversions ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}
	defer rows.Close()

	var convs []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.OldText, &c.NewLicenseID); err != nil {
			return nil, fmt.Errorf("failed to scan conversion row: %w", err)
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversions: %w", err)
	}
	return convs, nil
}

// AddConversion inserts a conversion with an explicit ID.
func (db *DB) AddConversion(ctx context.Context, c Conversion) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO conversions (id, old_text, new_license_id) VALUES ($1, $2, $3)`,
		c.ID, c.OldText, c.NewLicenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to add conversion %q: %w", c.OldText, err)
	}
	return nil
}
