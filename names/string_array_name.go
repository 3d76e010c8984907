package names

// StringArrayName is a Name backed by a slice of unescaped components.
type StringArrayName struct {
	delimiter  rune
	components []string
}

var _ Name = (*StringArrayName)(nil)

// NewStringArrayName creates a name from unescaped components. The slice
// is copied.
func NewStringArrayName(components []string, delimiter rune) (*StringArrayName, error) {
	if err := ValidateDelimiter(delimiter); err != nil {
		return nil, err
	}
	return newStringArrayName(components, delimiter), nil
}

func newStringArrayName(components []string, delimiter rune) *StringArrayName {
	own := make([]string, len(components))
	copy(own, components)
	return &StringArrayName{delimiter: delimiter, components: own}
}

func (n *StringArrayName) Delimiter() rune {
	return n.delimiter
}

func (n *StringArrayName) NoComponents() int {
	return len(n.components)
}

func (n *StringArrayName) IsEmpty() bool {
	return len(n.components) == 0
}

func (n *StringArrayName) Component(i int) (string, error) {
	if err := checkIndex(i, len(n.components)); err != nil {
		return "", err
	}
	return n.components[i], nil
}

func (n *StringArrayName) AsString() string {
	return asString(n, n.delimiter)
}

func (n *StringArrayName) AsStringWith(delimiter rune) (string, error) {
	return asStringWith(n, delimiter)
}

func (n *StringArrayName) AsDataString() string {
	return Serialize(n.components, n.delimiter)
}

func (n *StringArrayName) String() string {
	return n.AsDataString()
}

func (n *StringArrayName) IsEqual(other Name) bool {
	return isEqual(n, other)
}

func (n *StringArrayName) HashCode() uint32 {
	return hashCode(n)
}

func (n *StringArrayName) SetComponent(i int, c string) (Name, error) {
	if err := checkIndex(i, len(n.components)); err != nil {
		return nil, err
	}
	return &StringArrayName{delimiter: n.delimiter, components: replaced(n.components, i, c)}, nil
}

func (n *StringArrayName) Insert(i int, c string) (Name, error) {
	if err := checkInsertIndex(i, len(n.components)); err != nil {
		return nil, err
	}
	return &StringArrayName{delimiter: n.delimiter, components: inserted(n.components, i, c)}, nil
}

func (n *StringArrayName) Append(c string) (Name, error) {
	return n.Insert(len(n.components), c)
}

func (n *StringArrayName) Remove(i int) (Name, error) {
	if err := checkIndex(i, len(n.components)); err != nil {
		return nil, err
	}
	return &StringArrayName{delimiter: n.delimiter, components: removed(n.components, i)}, nil
}

// Concat appends every component of other, whatever its representation.
func (n *StringArrayName) Concat(other Name) (Name, error) {
	out, err := concatenated(n.components, other)
	if err != nil {
		return nil, err
	}
	return &StringArrayName{delimiter: n.delimiter, components: out}, nil
}

func (n *StringArrayName) Clone() Name {
	return newStringArrayName(n.components, n.delimiter)
}
