package filesystem

import (
	"github.com/brettbedarf/namefs/contract"
	"github.com/brettbedarf/namefs/internal/util"
)

// Link is a node that refers to a target node it does not own. Its base
// name is the target's base name.
type Link struct {
	node
	target Node
}

// NewLink creates a link named bn in parent pointing at target. A nil
// target leaves the link dangling until SetTargetNode is called.
func NewLink(bn string, parent *Directory, target Node) (*Link, error) {
	l := &Link{}
	if err := l.init(l, bn, parent, SymlinkMode); err != nil {
		return nil, err
	}
	if !isNil(target) {
		if err := l.SetTargetNode(target); err != nil {
			// undo the attach so a rejected link does not linger in parent
			_ = parent.RemoveChildNode(l)
			return nil, err
		}
	}
	return l, nil
}

func (l *Link) TargetNode() Node {
	return l.target
}

// SetTargetNode points the link at t. Targets that would make the link
// refer back to itself are rejected.
func (l *Link) SetTargetNode(t Node) error {
	if err := contract.CheckArgument(!isNil(t), "link target must not be nil"); err != nil {
		return err
	}
	for cur := t; ; {
		if err := contract.CheckArgument(cur.base() != &l.node, "link %s cannot target itself", l.id); err != nil {
			return err
		}
		next, ok := cur.(*Link)
		if !ok || isNil(next.target) {
			break
		}
		cur = next.target
	}
	l.target = t
	l.touch()
	logger := util.GetLogger("Link")
	logger.Debug().Str("link", l.id.String()).Str("target", t.ID().String()).Msg("Set link target")
	return nil
}

// BaseName is the target's base name
func (l *Link) BaseName() (string, error) {
	t, err := l.ensureTarget()
	if err != nil {
		return "", err
	}
	return t.BaseName()
}

// Rename renames the target
func (l *Link) Rename(bn string) error {
	t, err := l.ensureTarget()
	if err != nil {
		return err
	}
	return t.Rename(bn)
}

func (l *Link) ensureTarget() (Node, error) {
	if err := contract.CheckState(!isNil(l.target), "link %s has no target", l.id); err != nil {
		return nil, err
	}
	return l.target, nil
}
