package names

import (
	"github.com/brettbedarf/namefs/contract"
)

// Variant selects the backing representation of names built by New and
// ParseName.
type Variant string

const (
	StringVariant Variant = "string"
	ArrayVariant  Variant = "array"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == StringVariant || v == ArrayVariant
}

// New builds a name of the given variant from unescaped components.
func New(v Variant, components []string, delimiter rune) (Name, error) {
	switch v {
	case ArrayVariant:
		if err := ValidateDelimiter(delimiter); err != nil {
			return nil, err
		}
		return newStringArrayName(components, delimiter), nil
	case StringVariant:
		if err := ValidateDelimiter(delimiter); err != nil {
			return nil, err
		}
		return fromComponents(components, delimiter)
	default:
		return nil, contract.New(contract.IllegalArgument, "unknown name variant %q", v)
	}
}

// ParseName builds a name of the given variant from a delimited, escaped
// string.
func ParseName(v Variant, raw string, delimiter rune) (Name, error) {
	switch v {
	case StringVariant:
		n, err := NewStringName(raw, delimiter)
		if err != nil {
			return nil, err
		}
		return n, nil
	case ArrayVariant:
		if err := ValidateDelimiter(delimiter); err != nil {
			return nil, err
		}
		comps, err := Parse(raw, delimiter)
		if err != nil {
			return nil, err
		}
		return newStringArrayName(comps, delimiter), nil
	default:
		return nil, contract.New(contract.IllegalArgument, "unknown name variant %q", v)
	}
}

// Empty returns the name with no components.
func Empty(v Variant, delimiter rune) (Name, error) {
	return New(v, nil, delimiter)
}
