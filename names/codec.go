package names

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/brettbedarf/namefs/contract"
)

const (
	// EscapeCharacter masks a following delimiter or escape character.
	EscapeCharacter = '\\'

	// DefaultDelimiter separates components when no delimiter is given.
	DefaultDelimiter = '.'

	// PathDelimiter separates components of node full names.
	PathDelimiter = '/'
)

// ValidateDelimiter checks that r can serve as a delimiter: a single
// printable character other than the escape character.
func ValidateDelimiter(r rune) error {
	if err := contract.CheckArgument(r != utf8.RuneError && unicode.IsPrint(r),
		"delimiter %q must be a printable character", r); err != nil {
		return err
	}
	return contract.CheckArgument(r != EscapeCharacter,
		"delimiter must not be the escape character %q", EscapeCharacter)
}

// ParseDelimiter converts s to a delimiter rune. s must be exactly one
// character.
func ParseDelimiter(s string) (rune, error) {
	if err := contract.CheckArgument(utf8.RuneCountInString(s) == 1,
		"delimiter must be exactly one character, got %q", s); err != nil {
		return 0, err
	}
	r, _ := utf8.DecodeRuneInString(s)
	if err := ValidateDelimiter(r); err != nil {
		return 0, err
	}
	return r, nil
}

// Escape masks every escape character and every delimiter in component
// with one leading escape character.
func Escape(component string, delimiter rune) string {
	var b strings.Builder
	b.Grow(len(component))
	for i, r := range component {
		if r == EscapeCharacter || r == delimiter {
			b.WriteRune(EscapeCharacter)
		}
		b.WriteString(runeAt(component, i))
	}
	return b.String()
}

// Unescape is the inverse of Escape. Only the escape character or the
// delimiter may follow an escape character.
func Unescape(masked string, delimiter rune) (string, error) {
	var b strings.Builder
	b.Grow(len(masked))
	escaped := false
	for i, r := range masked {
		switch {
		case escaped:
			if err := checkEscaped(r, delimiter); err != nil {
				return "", err
			}
			b.WriteString(runeAt(masked, i))
			escaped = false
		case r == EscapeCharacter:
			escaped = true
		case r == delimiter:
			return "", contract.New(contract.IllegalArgument,
				"unescaped delimiter %q in component %q", delimiter, masked)
		default:
			b.WriteString(runeAt(masked, i))
		}
	}
	if escaped {
		return "", contract.New(contract.IllegalArgument, "dangling escape character in %q", masked)
	}
	return b.String(), nil
}

// Parse splits raw into its unescaped components. An unescaped delimiter
// ends a component; the empty string has no components.
func Parse(raw string, delimiter rune) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}

	components := make([]string, 0, strings.Count(raw, string(delimiter))+1)
	var cur strings.Builder
	escaped := false
	for i, r := range raw {
		switch {
		case escaped:
			if err := checkEscaped(r, delimiter); err != nil {
				return nil, err
			}
			cur.WriteString(runeAt(raw, i))
			escaped = false
		case r == EscapeCharacter:
			escaped = true
		case r == delimiter:
			components = append(components, cur.String())
			cur.Reset()
		default:
			cur.WriteString(runeAt(raw, i))
		}
	}
	if escaped {
		return nil, contract.New(contract.IllegalArgument, "dangling escape character in %q", raw)
	}
	return append(components, cur.String()), nil
}

// Serialize escapes every component and joins them with delimiter.
func Serialize(components []string, delimiter rune) string {
	var b strings.Builder
	for i, c := range components {
		if i > 0 {
			b.WriteRune(delimiter)
		}
		b.WriteString(Escape(c, delimiter))
	}
	return b.String()
}

// runeAt returns the bytes of the character starting at s[i]. Invalid UTF-8
// comes back as the single original byte, not as utf8.RuneError.
func runeAt(s string, i int) string {
	_, size := utf8.DecodeRuneInString(s[i:])
	return s[i : i+size]
}

func checkEscaped(r, delimiter rune) error {
	return contract.CheckArgument(r == EscapeCharacter || r == delimiter,
		"illegal escape sequence %q", string([]rune{EscapeCharacter, r}))
}
