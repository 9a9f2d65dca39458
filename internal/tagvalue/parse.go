package tagvalue

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
)

// FileRecord holds the per-file fields extracted from a generic
// tag:value report. Fields not present in the report are left empty.
type FileRecord struct {
	FileName string
	License  string
	SHA1     string
	MD5      string
	SHA256   string
}

// ParseReport reads a generic tag:value report from path and returns
// one record per FileName tag, in source order. An I/O failure or an
// unrecoverable parse error returns a nil list and the error; all
// partial results are discarded.
func ParseReport(path string) ([]FileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("tagvalue: error opening report %s: %v", path, err)
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	loader := NewLoader()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		loader.ParseNextLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Printf("tagvalue: error reading report %s: %v", path, err)
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	pairs, err := loader.FinalPairs()
	if err != nil {
		return nil, fmt.Errorf("failed to load tag/value pairs from %s: %w", path, err)
	}
	return AssembleRecords(pairs), nil
}

// AssembleRecords groups an ordered pair list into file records. A
// FileName tag closes the open record (if any) and starts a new one;
// LicenseConcluded and FileChecksum fill in the open record. Unknown
// tags are ignored so that reports from newer producers still parse.
func AssembleRecords(pairs []Pair) []FileRecord {
	var records []FileRecord
	var current *FileRecord

	for _, p := range pairs {
		switch p.Tag {
		case "FileName":
			if current != nil {
				records = append(records, *current)
			}
			current = &FileRecord{FileName: p.Value}
		case "LicenseConcluded":
			if current == nil {
				log.Printf("tagvalue: LicenseConcluded %q seen before any FileName; skipping", p.Value)
				continue
			}
			current.License = p.Value
		case "FileChecksum":
			if current == nil {
				log.Printf("tagvalue: FileChecksum %q seen before any FileName; skipping", p.Value)
				continue
			}
			applyChecksum(current, p.Value)
		default:
			// ignore all other tags
		}
	}

	if current != nil {
		records = append(records, *current)
	}
	return records
}

// applyChecksum parses a FileChecksum value of the form "TYPE: hex"
// and sets the matching field. Malformed values and unknown checksum
// types are logged and skipped; they never abort the parse.
func applyChecksum(rec *FileRecord, value string) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		log.Printf("tagvalue: couldn't parse checksum value %q for %s; skipping", value, rec.FileName)
		return
	}
	sum := strings.TrimSpace(parts[1])
	switch strings.TrimSpace(parts[0]) {
	case "SHA1":
		rec.SHA1 = sum
	case "MD5":
		rec.MD5 = sum
	case "SHA256":
		rec.SHA256 = sum
	default:
		log.Printf("tagvalue: unknown checksum type in value %q for %s; skipping", value, rec.FileName)
	}
}
