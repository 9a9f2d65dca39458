package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/lfscan/spdx-summarizer/internal/analysis"
	"github.com/lfscan/spdx-summarizer/internal/db"
)

const statsSheet = "License counts"

// OutputExcelFull writes the full Excel report for one scan to
// xlsxPath: a "License counts" stats sheet with per-category license
// totals, plus one sheet per category listing its files and licenses.
// Files under .git are excluded.
func OutputExcelFull(ctx context.Context, database *db.DB, scanID uuid.UUID, xlsxPath string) error {
	cats, err := database.CategoryFilesForScan(ctx, scanID, true)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		return fmt.Errorf("no scan results found for scan %s", scanID)
	}

	ignoredExts, err := ignoredExtensions(ctx, database)
	if err != nil {
		return err
	}
	analysis.ReclassifyCategories(cats, ignoredExts)

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

	if err := writeStatsSheet(wb, cats, bold, normal); err != nil {
		return err
	}
	for _, cat := range cats {
		if err := writeCategorySheet(wb, cat, bold, normal); err != nil {
			return err
		}
	}

	if err := wb.SaveAs(xlsxPath); err != nil {
		return fmt.Errorf("failed to save Excel report to %s: %w", xlsxPath, err)
	}
	return nil
}

// writeStatsSheet builds the license-count summary page: each
// category name in bold, its licenses and file counts beneath it, and
// a grand total at the bottom.
func writeStatsSheet(wb *excelize.File, cats []db.CategoryFiles, bold, normal int) error {
	// reuse the default sheet for the stats page
	if err := wb.SetSheetName("Sheet1", statsSheet); err != nil {
		return fmt.Errorf("failed to set up stats sheet: %w", err)
	}

	wb.SetCellValue(statsSheet, "A1", "License")
	wb.SetCellValue(statsSheet, "C1", "# of files")
	wb.SetCellStyle(statsSheet, "A1", "A1", bold)
	wb.SetCellStyle(statsSheet, "C1", "C1", bold)
	wb.SetColWidth(statsSheet, "A", "A", 2)
	wb.SetColWidth(statsSheet, "B", "B", 58)
	wb.SetColWidth(statsSheet, "C", "C", 10)

	total := 0
	row := 3
	for _, cat := range cats {
		cell := fmt.Sprintf("A%d", row)
		wb.SetCellValue(statsSheet, cell, cat.Name+":")
		wb.SetCellStyle(statsSheet, cell, cell, bold)
		row++

		for _, license := range sortedKeys(cat.LicenseCounts) {
			count := cat.LicenseCounts[license]
			if count == 0 {
				continue
			}
			bCell := fmt.Sprintf("B%d", row)
			cCell := fmt.Sprintf("C%d", row)
			wb.SetCellValue(statsSheet, bCell, license)
			wb.SetCellValue(statsSheet, cCell, count)
			wb.SetCellStyle(statsSheet, bCell, cCell, normal)
			total += count
			row++
		}
		row++
	}

	aCell := fmt.Sprintf("A%d", row)
	cCell := fmt.Sprintf("C%d", row)
	wb.SetCellValue(statsSheet, aCell, "TOTAL:")
	wb.SetCellValue(statsSheet, cCell, total)
	wb.SetCellStyle(statsSheet, aCell, cCell, bold)
	return nil
}

// writeCategorySheet lists one category's files and licenses, sorted
// by file path.
func writeCategorySheet(wb *excelize.File, cat db.CategoryFiles, bold, normal int) error {
	name := sheetName(cat.Name)
	if _, err := wb.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	wb.SetCellValue(name, "A1", "File path")
	wb.SetCellValue(name, "B1", "License")
	wb.SetCellStyle(name, "A1", "B1", bold)
	wb.SetColWidth(name, "A", "A", 100)
	wb.SetColWidth(name, "B", "B", 40)

	row := 2
	for _, filename := range sortedKeys(cat.Files) {
		aCell := fmt.Sprintf("A%d", row)
		bCell := fmt.Sprintf("B%d", row)
		wb.SetCellValue(name, aCell, filename)
		wb.SetCellValue(name, bCell, cat.Files[filename])
		wb.SetCellStyle(name, aCell, bCell, normal)
		row++
	}
	return nil
}

// sheetName makes a category name safe for use as an Excel sheet
// name: the 31-character limit plus a handful of forbidden characters.
func sheetName(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", "?", "", "*", "", "[", "(", "]", ")", ":", "-")
	name = replacer.Replace(name)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
