package tagvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedLines(l *Loader, lines ...string) {
	for _, line := range lines {
		l.ParseNextLine(line)
	}
}

func TestLoader_SingleLineValue(t *testing.T) {
	l := NewLoader()
	feedLines(l, "Tag: hello")

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	require.Equal(t, []Pair{{Tag: "Tag", Value: "hello"}}, pairs)
}

func TestLoader_SkipsBlankAndCommentLines(t *testing.T) {
	l := NewLoader()
	feedLines(l,
		"",
		"   ",
		"# a comment",
		"FileName: src/a.c",
		"#another comment",
	)

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	require.Equal(t, []Pair{{Tag: "FileName", Value: "src/a.c"}}, pairs)
	assert.Equal(t, StateReady, l.State())
}

func TestLoader_MultiLineTextValue(t *testing.T) {
	l := NewLoader()
	feedLines(l,
		"Tag: <text>line1",
		"line2</text>",
	)

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	// lines are newline-joined, markers removed
	assert.Equal(t, "line1\nline2", pairs[0].Value)
}

func TestLoader_InlineTextValue(t *testing.T) {
	l := NewLoader()
	feedLines(l, "Tag: <text>one line only</text>")

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	require.Equal(t, []Pair{{Tag: "Tag", Value: "one line only"}}, pairs)
	assert.Equal(t, StateReady, l.State())
}

func TestLoader_TextValueSpanningSeveralLines(t *testing.T) {
	l := NewLoader()
	feedLines(l,
		"LicenseComment: <text>first",
		"second",
		"third</text>",
		"FileName: src/a.c",
	)

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	require.Equal(t, []Pair{
		{Tag: "LicenseComment", Value: "first\nsecond\nthird"},
		{Tag: "FileName", Value: "src/a.c"},
	}, pairs)
}

func TestLoader_MissingColonIsUnrecoverable(t *testing.T) {
	l := NewLoader()
	feedLines(l,
		"FileName: src/a.c",
		"this line has no colon",
		"FileName: src/b.c", // well-formed, but too late
	)

	assert.True(t, l.IsError())
	pairs, err := l.FinalPairs()
	assert.Nil(t, pairs)
	require.Error(t, err)

	var malformed *MalformedLineError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Line)
}

func TestLoader_UnterminatedTextIsUnrecoverable(t *testing.T) {
	l := NewLoader()
	feedLines(l,
		"Tag: <text>still going",
		"and going",
	)

	assert.Equal(t, StateMidtext, l.State())
	pairs, err := l.FinalPairs()
	assert.Nil(t, pairs)

	var unterminated *UnterminatedTextError
	require.ErrorAs(t, err, &unterminated)
	assert.Equal(t, "Tag", unterminated.Tag)
	assert.True(t, l.IsError())
}

func TestLoader_ErrorStateIgnoresFurtherLines(t *testing.T) {
	l := NewLoader()
	feedLines(l, "bad line without colon")
	require.True(t, l.IsError())

	feedLines(l, "Tag: value", "Other: value")
	assert.True(t, l.IsError())

	pairs, err := l.FinalPairs()
	assert.Nil(t, pairs)
	assert.Error(t, err)
}

func TestLoader_EmptyInputYieldsEmptyList(t *testing.T) {
	l := NewLoader()

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestLoader_ResetAllowsReuse(t *testing.T) {
	l := NewLoader()
	feedLines(l, "no colon here")
	require.True(t, l.IsError())

	l.Reset()
	assert.Equal(t, StateReady, l.State())
	feedLines(l, "Tag: value")

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	require.Equal(t, []Pair{{Tag: "Tag", Value: "value"}}, pairs)
}

func TestLoader_SplitsOnFirstColon(t *testing.T) {
	l := NewLoader()
	feedLines(l, "FileChecksum: SHA1: deadbeef")

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	require.Equal(t, []Pair{{Tag: "FileChecksum", Value: "SHA1: deadbeef"}}, pairs)
}

func TestLoader_TrimsTagAndValue(t *testing.T) {
	l := NewLoader()
	feedLines(l, "   FileName  :   src/a.c   ")

	pairs, err := l.FinalPairs()
	require.NoError(t, err)
	require.Equal(t, []Pair{{Tag: "FileName", Value: "src/a.c"}}, pairs)
}
