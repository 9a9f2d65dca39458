package tagvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFossologyReport_TwoRecords(t *testing.T) {
	path := writeReport(t, `SPDXVersion: SPDX-2.1
DataLicense: CC0-1.0

##File
FileName: src/a.c
LicenseConcluded: MIT
FileChecksum: SHA1: deadbeef
FileChecksum: MD5: cafebabe

##File
FileName: src/b.c
LicenseConcluded: GPL-2.0
FileChecksum: SHA1: 1234abcd
FileChecksum: MD5: 5678efab

##----------------------------------------
FileName: trailing/ignored.c
`)

	records, err := ParseFossologyReport(path)
	require.NoError(t, err)
	require.Equal(t, []FossologyRecord{
		{FileName: "src/a.c", License: "MIT", MD5: "cafebabe", SHA1: "deadbeef"},
		{FileName: "src/b.c", License: "GPL-2.0", MD5: "5678efab", SHA1: "1234abcd"},
	}, records)
}

func TestParseFossologyReport_RepeatedTagsJoined(t *testing.T) {
	path := writeReport(t, `##File
FileName: a.c
FileName: a-copy.c
LicenseConcluded: MIT
LicenseConcluded: Apache-2.0
##--------
`)

	records, err := ParseFossologyReport(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.c;a-copy.c", records[0].FileName)
	assert.Equal(t, "MIT;Apache-2.0", records[0].License)
}

func TestParseFossologyReport_FirstChecksumOfEachTypeWins(t *testing.T) {
	path := writeReport(t, `##File
FileName: a.c
FileChecksum: SHA1: first
FileChecksum: SHA1: second
FileChecksum: MD5: md5first
FileChecksum: SHA256: ignoredtype
##--------
`)

	records, err := ParseFossologyReport(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first", records[0].SHA1)
	assert.Equal(t, "md5first", records[0].MD5)
}

func TestParseFossologyReport_MalformedLineIgnored(t *testing.T) {
	// unlike the generic dialect, a line without a colon is skipped
	path := writeReport(t, `##File
FileName: a.c
this line has no colon
LicenseConcluded: MIT
##--------
`)

	records, err := ParseFossologyReport(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.c", records[0].FileName)
	assert.Equal(t, "MIT", records[0].License)
}

func TestParseFossologyReport_MultiLineTextLookahead(t *testing.T) {
	path := writeReport(t, `##File
FileName: a.c
LicenseConcluded: <text>MIT OR
Apache-2.0</text>
FileChecksum: SHA1: abc
##--------
`)

	records, err := ParseFossologyReport(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MIT OR\nApache-2.0", records[0].License)
	assert.Equal(t, "abc", records[0].SHA1)
}

func TestParseFossologyReport_UnterminatedTextFails(t *testing.T) {
	path := writeReport(t, `##File
FileName: a.c
LicenseConcluded: <text>never closed
FileChecksum: SHA1: abc
##--------
`)

	records, err := ParseFossologyReport(path)
	assert.Nil(t, records)

	var unterminated *UnterminatedTextError
	require.ErrorAs(t, err, &unterminated)
}

func TestParseFossologyReport_NoSentinelYieldsNoRecords(t *testing.T) {
	path := writeReport(t, `FileName: a.c
LicenseConcluded: MIT
`)

	records, err := ParseFossologyReport(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseFossologyReport_StopsAtTerminator(t *testing.T) {
	path := writeReport(t, `##File
FileName: a.c
##--------
##File
FileName: after-terminator.c
##--------
`)

	records, err := ParseFossologyReport(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a.c", records[0].FileName)
}

func TestIsFossologyTerminator(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"##--------", true},
		{"##-", true},
		{"##----------------------------------------", true},
		{"##File", false},
		{"##", false},
		{"--------", false},
		{"##--x--", false},
	}

	for _, tt := range tests {
		if got := isFossologyTerminator(tt.line); got != tt.want {
			t.Errorf("isFossologyTerminator(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
