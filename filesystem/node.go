package filesystem

import (
	"reflect"

	"github.com/brettbedarf/namefs/contract"
	"github.com/brettbedarf/namefs/internal/util"
	"github.com/brettbedarf/namefs/names"
	"github.com/google/uuid"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// Node is an element of the tree. Every node except the root has exactly
// one parent Directory, and the root is its own parent.
type Node interface {
	ID() uuid.UUID
	BaseName() (string, error)
	Rename(bn string) error
	ParentNode() *Directory
	Move(to *Directory) error
	FullName() (names.Name, error)
	FindNodes(bn string) (NodeSet, error)
	Attr() fuse.Attr

	base() *node
}

// node carries the fields shared by every Node kind. self points at the
// outer value so that calls made from here dispatch to its overrides.
type node struct {
	*Inode
	self     Node
	id       uuid.UUID
	baseName string
	parent   *Directory
}

// init wires the node to self and attaches it to parent
func (n *node) init(self Node, bn string, parent *Directory, mode uint32) error {
	if err := contract.CheckArgument(parent != nil, "parent directory must not be nil"); err != nil {
		return err
	}
	n.self = self
	n.id = uuid.New()
	n.baseName = bn
	n.Inode = newInode(nextIno(), mode)
	n.parent = parent
	return parent.AddChildNode(self)
}

func (n *node) base() *node {
	return n
}

// ID returns the node's identity. It never changes, even across renames.
func (n *node) ID() uuid.UUID {
	return n.id
}

func (n *node) BaseName() (string, error) {
	return n.baseName, nil
}

func (n *node) Rename(bn string) error {
	n.baseName = bn
	n.touch()
	return nil
}

func (n *node) ParentNode() *Directory {
	return n.parent
}

// FullName is the parent's full name with the node's base name appended
func (n *node) FullName() (names.Name, error) {
	if err := contract.CheckState(n.parent != nil, "node %s is detached", n.id); err != nil {
		return nil, err
	}
	parentName, err := n.parent.self.FullName()
	if err != nil {
		return nil, err
	}
	bn, err := n.self.BaseName()
	if err != nil {
		return nil, err
	}
	return parentName.Append(bn)
}

// Move detaches the node from its parent and attaches it to to. Nothing
// changes when a precondition fails, and a failing add puts the node back
// under its old parent.
func (n *node) Move(to *Directory) error {
	logger := util.GetLogger("Node.Move")

	if err := contract.CheckArgument(to != nil, "target directory must not be nil"); err != nil {
		return err
	}
	if err := n.checkNotAncestorOf(to); err != nil {
		return err
	}
	old := n.parent
	if old == to {
		return nil
	}
	if err := contract.CheckState(!to.HasChildNode(n.self), "node %s already in target directory", n.id); err != nil {
		return err
	}

	if err := old.RemoveChildNode(n.self); err != nil {
		return err
	}
	n.parent = to
	if err := to.AddChildNode(n.self); err != nil {
		logger.Warn().Err(err).Str("node", n.id.String()).Msg("Move failed, restoring old parent")
		n.parent = old
		old.children.Store(n.self, struct{}{})
		return err
	}
	logger.Debug().Str("node", n.id.String()).Str("to", to.id.String()).Msg("Moved node")
	return nil
}

// checkNotAncestorOf fails when to is the node itself or lies below it
func (n *node) checkNotAncestorOf(to *Directory) error {
	for d := to; d != nil; d = d.parent {
		if err := contract.CheckArgument(&d.node != n, "cannot move node %s into itself or its descendant", n.id); err != nil {
			return err
		}
		if d.parent == d {
			break
		}
	}
	return nil
}

func (n *node) FindNodes(bn string) (NodeSet, error) {
	return findNodes(n.self, bn)
}

// isNil also catches typed nil pointers stored in a Node
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
