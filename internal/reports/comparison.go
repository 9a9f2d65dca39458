package reports

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/lfscan/spdx-summarizer/internal/db"
)

// licenseChange records one file present in both scans whose license
// differs between them.
type licenseChange struct {
	FileName      string
	FirstLicense  string
	SecondLicense string
}

// scanComparison is the result of matching two scans' file listings.
// All slices are sorted by filename.
type scanComparison struct {
	Changed    []licenseChange
	FirstOnly  []string
	SecondOnly []string
}

// compareScans matches two filename-to-license maps and splits the
// result into changed licenses, first-only files and second-only
// files.
func compareScans(first, second map[string]string) scanComparison {
	var comp scanComparison
	for filename, firstLicense := range first {
		secondLicense, ok := second[filename]
		if !ok {
			comp.FirstOnly = append(comp.FirstOnly, filename)
			continue
		}
		if firstLicense != secondLicense {
			comp.Changed = append(comp.Changed, licenseChange{
				FileName:      filename,
				FirstLicense:  firstLicense,
				SecondLicense: secondLicense,
			})
		}
	}
	for filename := range second {
		if _, ok := first[filename]; !ok {
			comp.SecondOnly = append(comp.SecondOnly, filename)
		}
	}

	sort.Slice(comp.Changed, func(i, j int) bool {
		return comp.Changed[i].FileName < comp.Changed[j].FileName
	})
	sort.Strings(comp.FirstOnly)
	sort.Strings(comp.SecondOnly)
	return comp
}

// OutputExcelComparison writes an Excel report comparing two scans to
// xlsxPath: a "Changed licenses" sheet for files in both scans whose
// license differs, plus "In first only" and "In second only" file
// listings. Files under .git are excluded.
func OutputExcelComparison(ctx context.Context, database *db.DB, firstID, secondID uuid.UUID, xlsxPath string) error {
	first, err := database.LicenseFilesForScan(ctx, firstID, true)
	if err != nil {
		return err
	}
	if len(first) == 0 {
		return fmt.Errorf("no scan results found for scan %s", firstID)
	}
	second, err := database.LicenseFilesForScan(ctx, secondID, true)
	if err != nil {
		return err
	}
	if len(second) == 0 {
		return fmt.Errorf("no scan results found for scan %s", secondID)
	}

	comp := compareScans(first, second)

	wb := excelize.NewFile()
	defer wb.Close()

	bold, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return fmt.Errorf("failed to create workbook style: %w", err)
	}
	normal, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 14}})
	if err != nil {
		return fmt.Errorf("failed to create workbook style: %w", err)
	}

	if err := writeChangedSheet(wb, comp.Changed, bold, normal); err != nil {
		return err
	}
	if err := writeOnlySheet(wb, "In first only", comp.FirstOnly, first, bold, normal); err != nil {
		return err
	}
	if err := writeOnlySheet(wb, "In second only", comp.SecondOnly, second, bold, normal); err != nil {
		return err
	}

	if err := wb.SaveAs(xlsxPath); err != nil {
		return fmt.Errorf("failed to save Excel comparison to %s: %w", xlsxPath, err)
	}
	return nil
}

// writeChangedSheet lists files whose license differs between the two
// scans, one row per file with both licenses.
func writeChangedSheet(wb *excelize.File, changed []licenseChange, bold, normal int) error {
	const name = "Changed licenses"
	// reuse the default sheet for the changed-licenses page
	if err := wb.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("failed to set up sheet %s: %w", name, err)
	}

	wb.SetCellValue(name, "A1", "File")
	wb.SetCellValue(name, "B1", "First License")
	wb.SetCellValue(name, "C1", "Second License")
	wb.SetCellStyle(name, "A1", "C1", bold)
	wb.SetColWidth(name, "A", "A", 100)
	wb.SetColWidth(name, "B", "C", 60)

	row := 2
	for _, change := range changed {
		aCell := fmt.Sprintf("A%d", row)
		cCell := fmt.Sprintf("C%d", row)
		wb.SetCellValue(name, aCell, change.FileName)
		wb.SetCellValue(name, fmt.Sprintf("B%d", row), change.FirstLicense)
		wb.SetCellValue(name, cCell, change.SecondLicense)
		wb.SetCellStyle(name, aCell, cCell, normal)
		row++
	}
	return nil
}

// writeOnlySheet lists files present in one scan only, with the
// license that scan recorded for them.
func writeOnlySheet(wb *excelize.File, name string, filenames []string, records map[string]string, bold, normal int) error {
	if _, err := wb.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	wb.SetCellValue(name, "A1", "File")
	wb.SetCellValue(name, "B1", "License")
	wb.SetCellStyle(name, "A1", "B1", bold)
	wb.SetColWidth(name, "A", "A", 100)
	wb.SetColWidth(name, "B", "B", 60)

	row := 2
	for _, filename := range filenames {
		aCell := fmt.Sprintf("A%d", row)
		bCell := fmt.Sprintf("B%d", row)
		wb.SetCellValue(name, aCell, filename)
		wb.SetCellValue(name, bCell, records[filename])
		wb.SetCellStyle(name, aCell, bCell, normal)
		row++
	}
	return nil
}
