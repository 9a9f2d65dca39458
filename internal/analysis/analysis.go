// Package analysis post-processes scan results before reporting,
// splitting "No license found" files into finer-grained buckets based
// on file extension and path.
package analysis

import (
	"log"
	"path"
	"strings"

	"github.com/lfscan/spdx-summarizer/internal/db"
)

const (
	// NoLicenseFound is the license title assigned by scanners to
	// files with no detected license.
	NoLicenseFound = "No license found"
	// NoLicenseExcludedExt replaces NoLicenseFound for files whose
	// extension is on the project's ignore list.
	NoLicenseExcludedExt = "No license found - excluded file extension"
	// NoLicenseVendorDir replaces NoLicenseFound for files inside a
	// vendor directory.
	NoLicenseVendorDir = "No license found - in vendor directory"
)

// ParseIgnoredExtensions splits the semicolon-separated
// ignore_extensions config value into a list.
func ParseIgnoredExtensions(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ";")
}

// ReclassifyIgnoredExtensions rewrites a filename => license map so
// that no-license files with an ignored extension get their own
// license title.
func ReclassifyIgnoredExtensions(records map[string]string, ignoredExts []string) {
	for filename, license := range records {
		if license == NoLicenseFound && extIgnored(filename, ignoredExts) {
			records[filename] = NoLicenseExcludedExt
		}
	}
}

// ReclassifyVendorFiles rewrites a filename => license map so that
// no-license files inside a vendor directory get their own license
// title.
func ReclassifyVendorFiles(records map[string]string) {
	for filename, license := range records {
		if license == NoLicenseFound && strings.Contains(filename, "vendor/") {
			records[filename] = NoLicenseVendorDir
		}
	}
}

// ReclassifyCategories applies both reclassifications to the
// "No license found" category of a per-category result set, keeping
// the license counts consistent. Other categories are untouched.
func ReclassifyCategories(cats []db.CategoryFiles, ignoredExts []string) {
	var cat *db.CategoryFiles
	for i := range cats {
		if cats[i].Name == NoLicenseFound {
			cat = &cats[i]
			break
		}
	}
	if cat == nil {
		log.Printf("analysis: no %q category found; skipping reclassification", NoLicenseFound)
		return
	}

	for filename, license := range cat.Files {
		if license != NoLicenseFound {
			continue
		}
		switch {
		case extIgnored(filename, ignoredExts):
			cat.Files[filename] = NoLicenseExcludedExt
			cat.LicenseCounts[NoLicenseFound]--
			cat.LicenseCounts[NoLicenseExcludedExt]++
		case strings.Contains(filename, "vendor/"):
			cat.Files[filename] = NoLicenseVendorDir
			cat.LicenseCounts[NoLicenseFound]--
			cat.LicenseCounts[NoLicenseVendorDir]++
		}
	}
}

func extIgnored(filename string, ignoredExts []string) bool {
	ext := path.Ext(filename)
	for _, ignored := range ignoredExts {
		if ext == ignored {
			return true
		}
	}
	return false
}
