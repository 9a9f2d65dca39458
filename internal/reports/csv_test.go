package reports

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVListing(t *testing.T) {
	records := map[string]string{
		"src/b.c": "GPL-2.0",
		"src/a.c": "MIT",
	}

	var sb strings.Builder
	require.NoError(t, WriteCSVListing(&sb, records))

	// header first, then rows sorted by filename
	assert.Equal(t, "File path,License\nsrc/a.c,MIT\nsrc/b.c,GPL-2.0\n", sb.String())
}

func TestWriteCSVListing_QuotesSpecialCharacters(t *testing.T) {
	records := map[string]string{
		"path with, comma.c": "MIT",
	}

	var sb strings.Builder
	require.NoError(t, WriteCSVListing(&sb, records))
	assert.Contains(t, sb.String(), `"path with, comma.c",MIT`)
}

func TestWriteCSVListing_Empty(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSVListing(&sb, nil))
	assert.Equal(t, "File path,License\n", sb.String())
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Attribution", sheetName("Attribution"))
	assert.Equal(t, "a-b-c", sheetName("a/b:c"))

	long := sheetName("No license found - excluded file extension")
	assert.LessOrEqual(t, len(long), 31)
	assert.True(t, strings.HasPrefix(long, "No license found"))
}
