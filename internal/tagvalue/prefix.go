package tagvalue

import "strings"

// StripCommonPrefix removes the longest common path-segment prefix
// from every record's filename, in place, and returns the prefix that
// was removed (including its trailing separator). An empty record
// list or filenames with no shared leading segment return "" and
// leave the records untouched.
func StripCommonPrefix(records []FileRecord) string {
	paths := make([]string, len(records))
	for i := range records {
		paths[i] = records[i].FileName
	}
	prefix := commonPathPrefix(paths)
	for i := range records {
		records[i].FileName = records[i].FileName[len(prefix):]
	}
	return prefix
}

// StripCommonPrefixFossology is StripCommonPrefix for the
// sentinel-delimited record shape.
func StripCommonPrefixFossology(records []FossologyRecord) string {
	paths := make([]string, len(records))
	for i := range records {
		paths[i] = records[i].FileName
	}
	prefix := commonPathPrefix(paths)
	for i := range records {
		records[i].FileName = records[i].FileName[len(prefix):]
	}
	return prefix
}

// commonPathPrefix returns the longest leading run of path segments
// shared by every path, joined with "/" and ending in "/". The
// boundary only ever falls on a separator; comparing raw characters
// would wrongly treat "src/abc" and "src/abd" as sharing "src/ab".
// If some path consists entirely of common segments, the final
// segment is kept so no filename is stripped to nothing.
func commonPathPrefix(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	common := strings.Split(paths[0], "/")
	for _, p := range paths[1:] {
		segs := strings.Split(p, "/")
		if len(segs) < len(common) {
			common = common[:len(segs)]
		}
		for i := range common {
			if common[i] != segs[i] {
				common = common[:i]
				break
			}
		}
	}

	// never swallow an entire filename
	for _, p := range paths {
		if len(common) == len(strings.Split(p, "/")) {
			common = common[:len(common)-1]
			break
		}
	}

	if len(common) == 0 {
		return ""
	}
	return strings.Join(common, "/") + "/"
}
