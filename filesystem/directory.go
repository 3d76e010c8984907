package filesystem

import (
	"github.com/brettbedarf/namefs/contract"
	"github.com/brettbedarf/namefs/internal/util"
	"github.com/puzpuzpuz/xsync/v4"
)

// Directory is a node owning a set of child nodes. Children are kept by
// identity, so two children may share a base name.
type Directory struct {
	node
	children *xsync.Map[Node, struct{}]
}

// NewDirectory creates a directory named bn and adds it to parent
func NewDirectory(bn string, parent *Directory) (*Directory, error) {
	d := &Directory{children: xsync.NewMap[Node, struct{}]()}
	if err := d.init(d, bn, parent, DirMode); err != nil {
		return nil, err
	}
	return d, nil
}

// HasChildNode reports whether c is a direct child. nil is never a child.
func (d *Directory) HasChildNode(c Node) bool {
	if isNil(c) {
		return false
	}
	_, ok := d.children.Load(c)
	return ok
}

// AddChildNode adds c to the child set. The caller is responsible for c
// already pointing at d as its parent.
func (d *Directory) AddChildNode(c Node) error {
	logger := util.GetLogger("Directory.AddChildNode")

	if err := contract.CheckArgument(!isNil(c), "child node must not be nil"); err != nil {
		return err
	}
	if err := contract.CheckState(c.base() != &d.node, "directory cannot contain itself"); err != nil {
		return err
	}
	_, loaded := d.children.LoadOrStore(c, struct{}{})
	if err := contract.CheckState(!loaded, "node %s is already a child", c.ID()); err != nil {
		return err
	}
	if err := d.assertClassInvariant(); err != nil {
		d.children.Delete(c)
		logger.Error().Err(err).Str("child", c.ID().String()).Msg("Rejected child")
		return err
	}
	d.touch()
	logger.Trace().Str("dir", d.id.String()).Str("child", c.ID().String()).Msg("Added child")
	return nil
}

// RemoveChildNode removes c from the child set
func (d *Directory) RemoveChildNode(c Node) error {
	if err := contract.CheckArgument(!isNil(c), "child node must not be nil"); err != nil {
		return err
	}
	_, ok := d.children.LoadAndDelete(c)
	if err := contract.CheckState(ok, "node %s is not a child", c.ID()); err != nil {
		return err
	}
	if err := contract.CheckResult(!d.HasChildNode(c), "node %s still a child after removal", c.ID()); err != nil {
		return err
	}
	d.touch()
	return d.assertClassInvariant()
}

// ChildNodes returns a snapshot of the children in no particular order
func (d *Directory) ChildNodes() []Node {
	nodes := make([]Node, 0, d.children.Size())
	d.children.Range(func(c Node, _ struct{}) bool {
		nodes = append(nodes, c)
		return true
	})
	return nodes
}

func (d *Directory) NoChildNodes() int {
	return d.children.Size()
}

// assertClassInvariant checks every child names d as its parent
func (d *Directory) assertClassInvariant() error {
	var err error
	d.children.Range(func(c Node, _ struct{}) bool {
		if c.base() == &d.node {
			err = contract.New(contract.InvalidState, "directory %s contains itself", d.id)
			return false
		}
		if c.ParentNode() != d {
			err = contract.New(contract.InvalidState, "child %s of directory %s has another parent", c.ID(), d.id)
			return false
		}
		return true
	})
	return err
}
