// Package archive lists the contents of source archives and compares
// them against the files named in a license-scan report.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
)

// ListFiles returns the regular files contained in a zip or tar
// archive (gzip-compressed tar included), excluding directories. The
// archive type is detected from the file contents, not the extension.
func ListFiles(path string) ([]string, error) {
	if isZip(path) {
		return listZip(path)
	}
	return listTar(path)
}

// isZip checks for the zip local-file-header magic.
func isZip(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(f, magic); err != nil {
		return false
	}
	return string(magic[:2]) == "PK"
}

func listZip(path string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive %s: %w", path, err)
	}
	defer r.Close()

	var filenames []string
	for _, member := range r.File {
		if member.FileInfo().IsDir() {
			continue
		}
		filenames = append(filenames, member.Name)
	}
	return filenames, nil
}

func listTar(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open tar archive %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	gz, err := gzip.NewReader(f)
	if err == nil {
		defer gz.Close()
		r = gz
	} else {
		// not gzip-compressed; rewind and read as plain tar
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to rewind archive %s: %w", path, err)
		}
	}

	var filenames []string
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive %s: %w", path, err)
		}
		if hdr.Typeflag == tar.TypeReg {
			filenames = append(filenames, hdr.Name)
		}
	}
	return filenames, nil
}

// Comparison holds the result of matching a report's file list
// against an archive's contents. All three lists are sorted.
type Comparison struct {
	ArchiveOnly []string
	ReportOnly  []string
	Both        []string
}

// Compare matches the files named in a scan report against the files
// in an archive listing.
func Compare(reportFiles, archiveFiles []string) Comparison {
	inArchive := make(map[string]bool, len(archiveFiles))
	for _, f := range archiveFiles {
		inArchive[f] = true
	}
	inReport := make(map[string]bool, len(reportFiles))
	for _, f := range reportFiles {
		inReport[f] = true
	}

	var comp Comparison
	for f := range inArchive {
		if inReport[f] {
			comp.Both = append(comp.Both, f)
		} else {
			comp.ArchiveOnly = append(comp.ArchiveOnly, f)
		}
	}
	for f := range inReport {
		if !inArchive[f] {
			comp.ReportOnly = append(comp.ReportOnly, f)
		}
	}

	sort.Strings(comp.ArchiveOnly)
	sort.Strings(comp.ReportOnly)
	sort.Strings(comp.Both)
	return comp
}

// WriteFileListCSV writes one comparison bucket as a single-column
// CSV file with a header row.
func WriteFileListCSV(path string, filenames []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create comparison CSV %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"File path"}); err != nil {
		return fmt.Errorf("failed to write comparison CSV %s: %w", path, err)
	}
	for _, filename := range filenames {
		if err := cw.Write([]string{filename}); err != nil {
			return fmt.Errorf("failed to write comparison CSV %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write comparison CSV %s: %w", path, err)
	}
	return f.Close()
}
