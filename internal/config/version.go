package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the current summarizer version.
const Version = "1.0.0"

// VersionLastDBChange is the most recent version that changed the
// database schema. A database stamped with an older version needs a
// migration before use.
const VersionLastDBChange = "1.0.0"

// semver is a parsed major.minor.point version.
type semver struct {
	major, minor, point int
}

// parseVersion parses a "major.minor.point" version string.
func parseVersion(s string) (semver, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return semver{}, fmt.Errorf("invalid version string %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return semver{}, fmt.Errorf("invalid version string %q", s)
		}
		nums[i] = n
	}
	return semver{nums[0], nums[1], nums[2]}, nil
}

// CompareVersions compares two "major.minor.point" version strings,
// returning <0, 0 or >0 as a is less than, equal to, or greater than
// b. Either string being malformed is an error.
func CompareVersions(a, b string) (int, error) {
	va, err := parseVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := parseVersion(b)
	if err != nil {
		return 0, err
	}
	if d := va.major - vb.major; d != 0 {
		return d, nil
	}
	if d := va.minor - vb.minor; d != 0 {
		return d, nil
	}
	return va.point - vb.point, nil
}

// DBTooOld reports whether a database stamped with dbVersion predates
// the last schema change and needs a migration.
func DBTooOld(dbVersion string) (bool, error) {
	c, err := CompareVersions(dbVersion, VersionLastDBChange)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// DBTooNew reports whether a database stamped with dbVersion was
// created by a newer summarizer than this one.
func DBTooNew(dbVersion string) (bool, error) {
	c, err := CompareVersions(dbVersion, Version)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
