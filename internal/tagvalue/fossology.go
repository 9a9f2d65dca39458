package tagvalue

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
)

// fileSentinel opens each file record in FOSSology SPDX tag:value
// output. The record set ends with a terminator line of dashes
// prefixed by "##".
const fileSentinel = "##File"

// FossologyRecord holds the per-file fields extracted from a
// FOSSology-style sentinel-delimited report. This dialect allows tags
// to repeat within one record; repeated FileName and LicenseConcluded
// values are joined with ";".
type FossologyRecord struct {
	FileName string
	License  string
	MD5      string
	SHA1     string
}

type fossologyState int

const (
	fossReady fossologyState = iota
	fossInFileSet
	fossDone
)

// ParseFossologyReport reads a FOSSology SPDX tag:value report from
// path and returns one record per ##File block, in source order.
// Lines before the first ##File sentinel are discarded; parsing stops
// at the dashed terminator line. A report that ends inside an
// unclosed <text> value is an unrecoverable error.
func ParseFossologyReport(path string) ([]FossologyRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("tagvalue: error opening report %s: %v", path, err)
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.Printf("tagvalue: error reading report %s: %v", path, err)
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	records, err := assembleFossologyRecords(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FOSSology report %s: %w", path, err)
	}
	return records, nil
}

// assembleFossologyRecords runs the sentinel-delimited state machine
// over raw report lines. Repeated tags accumulate per record; a
// record closes on the next ##File sentinel or the terminator line.
func assembleFossologyRecords(lines []string) ([]FossologyRecord, error) {
	state := fossReady
	tags := make(map[string][]string)
	var records []FossologyRecord

	for i := 0; i < len(lines) && state != fossDone; i++ {
		trimmed := strings.TrimSpace(lines[i])

		switch state {
		case fossReady:
			if trimmed == fileSentinel {
				state = fossInFileSet
			}

		case fossInFileSet:
			if trimmed == "" {
				continue
			}
			if trimmed == fileSentinel {
				records = append(records, closeFossologyRecord(tags))
				tags = make(map[string][]string)
				continue
			}
			if isFossologyTerminator(trimmed) {
				records = append(records, closeFossologyRecord(tags))
				tags = make(map[string][]string)
				state = fossDone
				continue
			}

			colon := strings.Index(trimmed, ":")
			if colon == -1 {
				// unlike the generic dialect, a missing colon here is
				// not fatal
				log.Printf("tagvalue: no ':' found in line %d: %q; ignoring", i+1, trimmed)
				continue
			}
			tag := strings.TrimSpace(trimmed[:colon])
			value := strings.TrimSpace(trimmed[colon+1:])

			if open := strings.Index(value, textOpen); open != -1 {
				rest := value[open+len(textOpen):]
				if end := strings.Index(rest, textClose); end != -1 {
					value = rest[:end]
				} else {
					joined, next, err := consumeTextLines(rest, lines, i)
					if err != nil {
						return nil, err
					}
					value = joined
					i = next
				}
			}

			tags[tag] = append(tags[tag], value)
		}
	}

	return records, nil
}

// consumeTextLines appends raw lines to an open <text> value until one
// contains the closing marker, returning the joined value and the
// index of the line holding the marker. Exhausting the input without
// finding the marker is unrecoverable.
func consumeTextLines(first string, lines []string, start int) (string, int, error) {
	var sb strings.Builder
	sb.WriteString(first)

	for i := start + 1; i < len(lines); i++ {
		end := strings.Index(lines[i], textClose)
		sb.WriteString("\n")
		if end == -1 {
			sb.WriteString(lines[i])
			continue
		}
		sb.WriteString(lines[i][:end])
		return sb.String(), i, nil
	}

	log.Printf("tagvalue: input ended while looking for %s marker", textClose)
	return "", len(lines), &UnterminatedTextError{Line: len(lines)}
}

// closeFossologyRecord builds a record from the accumulated per-tag
// value lists. Only the first SHA1 and first MD5 checksums are kept;
// other checksum types are logged and ignored.
func closeFossologyRecord(tags map[string][]string) FossologyRecord {
	rec := FossologyRecord{
		FileName: strings.Join(tags["FileName"], ";"),
		License:  strings.Join(tags["LicenseConcluded"], ";"),
	}

	for _, value := range tags["FileChecksum"] {
		parts := strings.SplitN(value, ":", 2)
		if len(parts) != 2 {
			log.Printf("tagvalue: couldn't parse checksum value %q for %s; skipping", value, rec.FileName)
			continue
		}
		sum := strings.TrimSpace(parts[1])
		switch strings.TrimSpace(parts[0]) {
		case "SHA1":
			if rec.SHA1 == "" {
				rec.SHA1 = sum
			}
		case "MD5":
			if rec.MD5 == "" {
				rec.MD5 = sum
			}
		default:
			log.Printf("tagvalue: unknown checksum type in value %q for %s; skipping", value, rec.FileName)
		}
	}

	return rec
}

// isFossologyTerminator reports whether line is the end-of-listing
// sentinel: "##" followed by nothing but dashes.
func isFossologyTerminator(line string) bool {
	if !strings.HasPrefix(line, "##") {
		return false
	}
	rest := line[2:]
	if rest == "" {
		return false
	}
	return strings.Trim(rest, "-") == ""
}
