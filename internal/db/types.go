package db

import (
	"time"

	"github.com/google/uuid"
)

// Scan is one imported license-scan report.
type Scan struct {
	ID          uuid.UUID
	ScanDate    time.Time
	Description string
	CreatedAt   time.Time
}

// Category groups licenses for reporting (e.g. "Attribution",
// "Copyleft", "No license found"). IDs are fixed by the project seed
// configuration.
type Category struct {
	ID   int
	Name string
}

// License is a known license short name assigned to a category.
type License struct {
	ID         int
	ShortName  string
	CategoryID int
}

// Conversion maps a raw license string seen in scan output to a
// canonical license ID.
type Conversion struct {
	ID           int
	OldText      string
	NewLicenseID int
}

// File is one per-file scan result row.
type File struct {
	ID        int64
	ScanID    uuid.UUID
	FileName  string
	LicenseID int
	MD5       string
	SHA1      string
	SHA256    string
}

// CategoryFiles is the per-category slice of a scan used by report
// rendering: the category's files with their license names, plus
// per-license file counts.
type CategoryFiles struct {
	CategoryID    int
	Name          string
	Files         map[string]string
	LicenseCounts map[string]int
}
