package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AddScan creates a new scan record and returns its ID.
func (db *DB) AddScan(ctx context.Context, scanDate time.Time, description string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO scans (scan_date, description) VALUES ($1, $2) RETURNING id`,
		scanDate, description,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create scan: %w", err)
	}
	return id, nil
}

// Scans returns all scans ordered by creation time.
func (db *DB) Scans(ctx context.Context) ([]Scan, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, scan_date, description, created_at FROM scans ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var s Scan
		if err := rows.Scan(&s.ID, &s.ScanDate, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scans: %w", err)
	}
	return scans, nil
}

// GetScan returns one scan by ID, or nil if it does not exist.
func (db *DB) GetScan(ctx context.Context, id uuid.UUID) (*Scan, error) {
	var s Scan
	err := db.pool.QueryRow(ctx,
		`SELECT id, scan_date, description, created_at FROM scans WHERE id = $1`, id,
	).Scan(&s.ID, &s.ScanDate, &s.Description, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan %s: %w", id, err)
	}
	return &s, nil
}
