// Package names implements structured names: ordered sequences of string
// components separated by a delimiter, with escaping of the delimiter and
// the escape character inside components.
//
// Names are persistent. Every edit returns a new Name and leaves the
// receiver untouched, so callers must use the returned value.
//
// Two representations are provided. StringArrayName keeps the components
// in a slice and StringName keeps a single escaped, delimited string.
// They are interchangeable: equality, hashing and rendering only go
// through Component and NoComponents.
package names

import (
	"strings"

	"github.com/brettbedarf/namefs/contract"
)

// Name is an immutable structured name.
type Name interface {
	// Delimiter returns the character separating components in the
	// rendered forms of this name.
	Delimiter() rune

	// NoComponents returns the number of components; zero for the empty name.
	NoComponents() int
	IsEmpty() bool

	// Component returns the unescaped component at index i.
	Component(i int) (string, error)

	// AsString renders the display form: unescaped components joined by
	// the name's delimiter. It is not safe for round-tripping.
	AsString() string

	// AsStringWith is AsString with a different delimiter.
	AsStringWith(delimiter rune) (string, error)

	// AsDataString renders the canonical form: escaped components joined
	// by the name's delimiter. Parsing it with that delimiter gives back
	// the same components.
	AsDataString() string
	String() string

	IsEqual(other Name) bool
	HashCode() uint32

	SetComponent(i int, c string) (Name, error)
	Insert(i int, c string) (Name, error)
	Append(c string) (Name, error)
	Remove(i int) (Name, error)
	Concat(other Name) (Name, error)
	Clone() Name
}

// components reads all components of n through its primitive accessors.
func components(n Name) []string {
	count := n.NoComponents()
	out := make([]string, 0, count)
	for i := range count {
		c, err := n.Component(i)
		if err != nil {
			// Only reachable if an implementation disagrees with its own count.
			break
		}
		out = append(out, c)
	}
	return out
}

func asString(n Name, delimiter rune) string {
	return strings.Join(components(n), string(delimiter))
}

func asStringWith(n Name, delimiter rune) (string, error) {
	if err := ValidateDelimiter(delimiter); err != nil {
		return "", err
	}
	return asString(n, delimiter), nil
}

// isEqual compares component-wise. Delimiters are not compared.
func isEqual(a, b Name) bool {
	if b == nil {
		return false
	}
	count := a.NoComponents()
	if count != b.NoComponents() {
		return false
	}
	for i := range count {
		ac, aerr := a.Component(i)
		bc, berr := b.Component(i)
		if aerr != nil || berr != nil || ac != bc {
			return false
		}
	}
	return true
}

// hashCode folds h = h*31 + r over the canonical form rendered with the
// default delimiter, so equal names hash equally whatever their delimiter.
func hashCode(n Name) uint32 {
	var h uint32
	for _, r := range Serialize(components(n), DefaultDelimiter) {
		h = h*31 + uint32(r)
	}
	return h
}

func checkIndex(i, count int) error {
	return contract.CheckArgument(i >= 0 && i < count, "index %d out of range [0, %d)", i, count)
}

func checkInsertIndex(i, count int) error {
	return contract.CheckArgument(i >= 0 && i <= count, "index %d out of range [0, %d]", i, count)
}

func checkOther(other Name) error {
	return contract.CheckArgument(other != nil, "other name must not be nil")
}

// concatenated returns own followed by every component of other and
// checks that the count grew by exactly other's count.
func concatenated(own []string, other Name) ([]string, error) {
	if err := checkOther(other); err != nil {
		return nil, err
	}
	want := len(own) + other.NoComponents()
	out := make([]string, len(own), want)
	copy(out, own)
	for i := range other.NoComponents() {
		c, err := other.Component(i)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := contract.CheckResult(len(out) == want,
		"concat produced %d components, expected %d", len(out), want); err != nil {
		return nil, err
	}
	return out, nil
}

// edit helpers build a fresh slice; the source is never modified.

func replaced(src []string, i int, c string) []string {
	out := make([]string, len(src))
	copy(out, src)
	out[i] = c
	return out
}

func inserted(src []string, i int, c string) []string {
	out := make([]string, 0, len(src)+1)
	out = append(out, src[:i]...)
	out = append(out, c)
	return append(out, src[i:]...)
}

func removed(src []string, i int) []string {
	out := make([]string, 0, len(src)-1)
	out = append(out, src[:i]...)
	return append(out, src[i+1:]...)
}
