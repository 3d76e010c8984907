package names

import (
	"strings"

	"github.com/brettbedarf/namefs/contract"
)

// StringName is a Name backed by its canonical data string. The number of
// components is cached next to it; the empty data string is either the empty
// name or the single empty component, told apart by that count.
type StringName struct {
	delimiter    rune
	name         string
	noComponents int
}

var _ Name = (*StringName)(nil)

// NewStringName creates a name from a delimited, escaped string. The empty
// string is the empty name.
func NewStringName(source string, delimiter rune) (*StringName, error) {
	if err := ValidateDelimiter(delimiter); err != nil {
		return nil, err
	}
	comps, err := Parse(source, delimiter)
	if err != nil {
		return nil, err
	}
	n := &StringName{delimiter: delimiter, name: source, noComponents: len(comps)}
	if err := n.assertInvariant(); err != nil {
		return nil, err
	}
	return n, nil
}

// fromComponents builds the string form of comps. Serialize output always
// re-parses, so only the cached count needs checking.
func fromComponents(comps []string, delimiter rune) (Name, error) {
	n := &StringName{delimiter: delimiter, name: Serialize(comps, delimiter), noComponents: len(comps)}
	if err := n.assertInvariant(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *StringName) assertInvariant() error {
	if err := ValidateDelimiter(n.delimiter); err != nil {
		return contract.New(contract.InvalidState, "invalid delimiter %q", n.delimiter)
	}
	if n.name == "" {
		return contract.CheckState(n.noComponents == 0 || n.noComponents == 1,
			"cached component count %d does not match %q", n.noComponents, n.name)
	}
	count := 1
	escaped := false
	for _, r := range n.name {
		switch {
		case escaped:
			escaped = false
		case r == EscapeCharacter:
			escaped = true
		case r == n.delimiter:
			count++
		}
	}
	if escaped {
		return contract.New(contract.InvalidState, "dangling escape character in %q", n.name)
	}
	return contract.CheckState(count == n.noComponents,
		"cached component count %d does not match %q", n.noComponents, n.name)
}

// parts returns the unescaped components. The data string was validated
// on construction.
func (n *StringName) parts() []string {
	if n.name == "" {
		return make([]string, n.noComponents)
	}
	comps, err := Parse(n.name, n.delimiter)
	if err != nil {
		return nil
	}
	return comps
}

func (n *StringName) Delimiter() rune {
	return n.delimiter
}

func (n *StringName) NoComponents() int {
	return n.noComponents
}

func (n *StringName) IsEmpty() bool {
	return n.noComponents == 0
}

// Component scans the data string up to the i-th unescaped delimiter.
func (n *StringName) Component(i int) (string, error) {
	if err := checkIndex(i, n.noComponents); err != nil {
		return "", err
	}
	var b strings.Builder
	idx := 0
	escaped := false
	for j, r := range n.name {
		switch {
		case escaped:
			if idx == i {
				b.WriteString(runeAt(n.name, j))
			}
			escaped = false
		case r == EscapeCharacter:
			escaped = true
		case r == n.delimiter:
			idx++
			if idx > i {
				return b.String(), nil
			}
		default:
			if idx == i {
				b.WriteString(runeAt(n.name, j))
			}
		}
	}
	return b.String(), nil
}

func (n *StringName) AsString() string {
	return asString(n, n.delimiter)
}

func (n *StringName) AsStringWith(delimiter rune) (string, error) {
	return asStringWith(n, delimiter)
}

func (n *StringName) AsDataString() string {
	return n.name
}

func (n *StringName) String() string {
	return n.name
}

func (n *StringName) IsEqual(other Name) bool {
	return isEqual(n, other)
}

func (n *StringName) HashCode() uint32 {
	return hashCode(n)
}

func (n *StringName) SetComponent(i int, c string) (Name, error) {
	if err := checkIndex(i, n.noComponents); err != nil {
		return nil, err
	}
	return fromComponents(replaced(n.parts(), i, c), n.delimiter)
}

func (n *StringName) Insert(i int, c string) (Name, error) {
	if err := checkInsertIndex(i, n.noComponents); err != nil {
		return nil, err
	}
	return fromComponents(inserted(n.parts(), i, c), n.delimiter)
}

func (n *StringName) Append(c string) (Name, error) {
	return n.Insert(n.noComponents, c)
}

func (n *StringName) Remove(i int) (Name, error) {
	if err := checkIndex(i, n.noComponents); err != nil {
		return nil, err
	}
	return fromComponents(removed(n.parts(), i), n.delimiter)
}

// Concat appends every component of other, whatever its representation.
func (n *StringName) Concat(other Name) (Name, error) {
	out, err := concatenated(n.parts(), other)
	if err != nil {
		return nil, err
	}
	return fromComponents(out, n.delimiter)
}

func (n *StringName) Clone() Name {
	return &StringName{delimiter: n.delimiter, name: n.name, noComponents: n.noComponents}
}
