package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AddFiles bulk-inserts per-file scan results for one scan using the
// PostgreSQL COPY protocol. It returns the number of rows written.
func (db *DB) AddFiles(ctx context.Context, scanID uuid.UUID, files []File) (int64, error) {
	rows := make([][]any, len(files))
	for i, f := range files {
		rows[i] = []any{scanID, f.FileName, f.LicenseID, f.MD5, f.SHA1, f.SHA256}
	}

	n, err := db.pool.CopyFrom(ctx,
		pgx.Identifier{"files"},
		[]string{"scan_id", "filename", "license_id", "md5", "sha1", "sha256"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk-insert files for scan %s: %w", scanID, err)
	}
	return n, nil
}

// LicenseFilesForScan returns a filename => license short name map for
// one scan. When excludeGit is set, files under a .git directory are
// omitted.
func (db *DB) LicenseFilesForScan(ctx context.Context, scanID uuid.UUID, excludeGit bool) (map[string]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT f.filename, l.short_name
		 FROM files f JOIN licenses l ON f.license_id = l.id
		 WHERE f.scan_id = $1`,
		scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get files for scan %s: %w", scanID, err)
	}
	defer rows.Close()

	records := make(map[string]string)
	for rows.Next() {
		var filename, license string
		if err := rows.Scan(&filename, &license); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		if excludeGit && isGitPath(filename) {
			continue
		}
		records[filename] = license
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read files: %w", err)
	}
	return records, nil
}

// CategoryFilesForScan returns the scan's files grouped by license
// category, ordered by category ID, with per-license file counts.
// When excludeGit is set, files under a .git directory are omitted.
func (db *DB) CategoryFilesForScan(ctx context.Context, scanID uuid.UUID, excludeGit bool) ([]CategoryFiles, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT c.id, c.name, f.filename, l.short_name
		 FROM files f
		 JOIN licenses l ON f.license_id = l.id
		 JOIN categories c ON l.category_id = c.id
		 WHERE f.scan_id = $1
		 ORDER BY c.id`,
		scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get category files for scan %s: %w", scanID, err)
	}
	defer rows.Close()

	var cats []CategoryFiles
	index := make(map[int]int)
	for rows.Next() {
		var catID int
		var catName, filename, license string
		if err := rows.Scan(&catID, &catName, &filename, &license); err != nil {
			return nil, fmt.Errorf("failed to scan category file row: %w", err)
		}
		if excludeGit && isGitPath(filename) {
			continue
		}
		i, ok := index[catID]
		if !ok {
			cats = append(cats, CategoryFiles{
				CategoryID:    catID,
				Name:          catName,
				Files:         make(map[string]string),
				LicenseCounts: make(map[string]int),
			})
			i = len(cats) - 1
			index[catID] = i
		}
		cats[i].Files[filename] = license
		cats[i].LicenseCounts[license]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read category files: %w", err)
	}
	return cats, nil
}

// isGitPath reports whether filename sits inside a .git directory.
func isGitPath(filename string) bool {
	return strings.Contains(filename, "/.git/") || strings.HasPrefix(filename, ".git/")
}
