package names

import (
	"testing"

	"github.com/brettbedarf/namefs/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		component string
		delimiter rune
		expected  string
	}{
		{"plain", "oss", '.', "oss"},
		{"delimiters", "Oh..", '.', `Oh\.\.`},
		{"escape character", `a\b`, '.', `a\\b`},
		{"other delimiter untouched", "a.b", '/', "a.b"},
		{"mixed", `x/\.`, '/', `x\/\\.`},
		{"empty", "", '.', ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Escape(tt.component, tt.delimiter))

			back, err := Unescape(tt.expected, tt.delimiter)
			require.NoError(t, err)
			assert.Equal(t, tt.component, back)
		})
	}
}

func TestUnescape_Strict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		masked string
	}{
		{"dangling escape", `abc\`},
		{"escaped letter", `a\b`},
		{"unescaped delimiter", "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unescape(tt.masked, '.')
			assert.ErrorIs(t, err, contract.ErrIllegalArgument)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"empty", "", []string{}},
		{"single", "oss", []string{"oss"}},
		{"dotted", "oss.cs.fau.de", []string{"oss", "cs", "fau", "de"}},
		{"escaped delimiters", `Oh\.\.`, []string{"Oh.."}},
		{"empty components", "..", []string{"", "", ""}},
		{"escaped escape", `a\\.b`, []string{`a\`, "b"}},
		{"trailing delimiter", "a.", []string{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comps, err := Parse(tt.raw, '.')
			require.NoError(t, err)
			assert.Equal(t, tt.expected, comps)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Parse(`a.b\`, '.')
	assert.ErrorIs(t, err, contract.ErrIllegalArgument)

	_, err = Parse(`a\b`, '.')
	assert.ErrorIs(t, err, contract.ErrIllegalArgument)
}

func TestParseSerialize_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{"oss", "cs", "fau", "de"},
		{"Oh..", `back\slash`, "a.b.c"},
		{"", "x", ""},
		{`\.`, `\\`, "."},
		{"ünïcödé", "日本"},
		{"a\xffb", "\xc3", "\xc2"},
	}

	for _, delimiter := range []rune{'.', '/', '#', '§'} {
		for _, comps := range inputs {
			raw := Serialize(comps, delimiter)
			back, err := Parse(raw, delimiter)
			require.NoError(t, err, "delimiter %q raw %q", delimiter, raw)
			assert.Equal(t, comps, back)
		}
	}
}

func TestEscapeUnescape_InvalidUTF8(t *testing.T) {
	t.Parallel()

	masked := Escape("\xff.\xfe", '.')
	assert.Equal(t, "\xff\\.\xfe", masked)
	back, err := Unescape(masked, '.')
	require.NoError(t, err)
	assert.Equal(t, "\xff.\xfe", back)
}

func TestSerialize_Example(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `Oh\.\.`, Serialize([]string{"Oh.."}, '.'))
	assert.Equal(t, "oss.cs.fau.de", Serialize([]string{"oss", "cs", "fau", "de"}, '.'))
	assert.Equal(t, "", Serialize(nil, '.'))
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()

	r, err := ParseDelimiter("/")
	require.NoError(t, err)
	assert.Equal(t, '/', r)

	r, err = ParseDelimiter("§")
	require.NoError(t, err)
	assert.Equal(t, '§', r)

	for _, bad := range []string{"", "..", `\`, "\n"} {
		_, err := ParseDelimiter(bad)
		assert.ErrorIs(t, err, contract.ErrIllegalArgument, "delimiter %q", bad)
	}
}
