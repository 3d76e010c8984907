package filesystem

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/brettbedarf/namefs"
	"github.com/brettbedarf/namefs/config"
	"github.com/brettbedarf/namefs/contract"
	"github.com/brettbedarf/namefs/internal/util"
	"github.com/brettbedarf/namefs/names"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

// Tree builds and queries a node tree by path. Paths are names over the
// configured path delimiter, so an escaped delimiter is part of a base name.
type Tree struct {
	cfg      *config.Config
	root     *RootNode
	registry *xsync.Map[uuid.UUID, Node] // nodes created through the tree by ID
}

func NewTree(cfg *config.Config) (*Tree, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	r, err := NewRoot(cfg)
	if err != nil {
		return nil, err
	}
	t := &Tree{cfg: cfg, root: r, registry: xsync.NewMap[uuid.UUID, Node]()}
	t.registry.Store(r.ID(), r)
	return t, nil
}

func (t *Tree) Root() *RootNode {
	return t.root
}

// Get returns the node registered under id
func (t *Tree) Get(id uuid.UUID) (Node, bool) {
	return t.registry.Load(id)
}

// Len is the number of registered nodes including the root
func (t *Tree) Len() int {
	return t.registry.Size()
}

// splitPath parses p into base names. One leading and one trailing
// delimiter are allowed; any other empty component is rejected.
func (t *Tree) splitPath(p string) ([]string, error) {
	n, err := names.ParseName(names.ArrayVariant, p, t.root.delimiter)
	if err != nil {
		return nil, err
	}
	comps := make([]string, 0, n.NoComponents())
	for i := range n.NoComponents() {
		c, err := n.Component(i)
		if err != nil {
			return nil, err
		}
		comps = append(comps, c)
	}
	if len(comps) > 0 && comps[0] == "" {
		comps = comps[1:]
	}
	if len(comps) > 0 && comps[len(comps)-1] == "" {
		comps = comps[:len(comps)-1]
	}
	for _, c := range comps {
		if err := contract.CheckArgument(c != "", "empty component in path %q", p); err != nil {
			return nil, err
		}
	}
	return comps, nil
}

// Lookup resolves path from the root. Links met along the way are followed
// when they lead to a directory.
func (t *Tree) Lookup(path string) (Node, error) {
	comps, err := t.splitPath(path)
	if err != nil {
		return nil, err
	}
	return t.lookupComps(comps, path)
}

func (t *Tree) lookupComps(comps []string, path string) (Node, error) {
	var cur Node = t.root
	for _, c := range comps {
		dir, ok := asDirectory(cur)
		if err := contract.CheckArgument(ok, "not a directory on path %q", path); err != nil {
			return nil, err
		}
		child, err := childNamed(dir, c)
		if err != nil {
			return nil, err
		}
		if err := contract.CheckArgument(child != nil, "no node at path %q", path); err != nil {
			return nil, err
		}
		cur = child
	}
	return cur, nil
}

// AddDirNode adds all missing directories in path and returns the leaf.
// It is equivalent to `mkdir -p` and does not fail when the leaf exists.
func (t *Tree) AddDirNode(path string) (*Directory, error) {
	comps, err := t.splitPath(path)
	if err != nil {
		return nil, err
	}
	d, _, err := t.ensureDir(comps, path)
	return d, err
}

// ensureDir walks comps creating missing directories. created reports
// whether the leaf is new.
func (t *Tree) ensureDir(comps []string, path string) (*Directory, bool, error) {
	logger := util.GetLogger("Tree.AddDirNode")

	cur := &t.root.Directory
	newCnt := 0
	for _, c := range comps {
		child, err := childNamed(cur, c)
		if err != nil {
			return nil, false, err
		}
		if child != nil {
			dir, ok := asDirectory(child)
			if err := contract.CheckArgument(ok, "%q on path %q is not a directory", c, path); err != nil {
				return nil, false, err
			}
			cur = dir
			continue
		}
		dir, err := NewDirectory(c, cur)
		if err != nil {
			return nil, false, err
		}
		t.registry.Store(dir.ID(), dir)
		newCnt++
		cur = dir
	}
	if newCnt > 0 {
		logger.Info().Str("path", path).Msg(fmt.Sprintf("Created %d new dir(s)", newCnt))
	}
	return cur, newCnt > 0 && len(comps) > 0, nil
}

// parentAndName splits path into its parent directory, created as needed,
// and the leaf base name. The leaf must not exist yet.
func (t *Tree) parentAndName(path string) (*Directory, string, error) {
	comps, err := t.splitPath(path)
	if err != nil {
		return nil, "", err
	}
	if err := contract.CheckArgument(len(comps) > 0, "path %q names the root", path); err != nil {
		return nil, "", err
	}
	parent, _, err := t.ensureDir(comps[:len(comps)-1], path)
	if err != nil {
		return nil, "", err
	}
	bn := comps[len(comps)-1]
	existing, err := childNamed(parent, bn)
	if err != nil {
		return nil, "", err
	}
	if err := contract.CheckState(existing == nil, "node already exists at path %q", path); err != nil {
		return nil, "", err
	}
	return parent, bn, nil
}

// AddFileNode adds a closed file at path, creating any missing directories
func (t *Tree) AddFileNode(path string) (*File, error) {
	logger := util.GetLogger("Tree.AddFileNode")

	parent, bn, err := t.parentAndName(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to create file")
		return nil, err
	}
	f, err := NewFile(bn, parent)
	if err != nil {
		return nil, err
	}
	t.registry.Store(f.ID(), f)
	logger.Debug().Str("path", path).Msg("Added new file node")
	return f, nil
}

// AddLinkNode adds a link at path pointing at target, which is either a
// registered node UUID or a path. The link's base name is the target's, so
// later lookups find it under that name rather than the last path
// component.
func (t *Tree) AddLinkNode(path, target string) (*Link, error) {
	logger := util.GetLogger("Tree.AddLinkNode")

	tn, err := t.resolveTarget(target)
	if err != nil {
		return nil, err
	}
	parent, bn, err := t.parentAndName(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to create link")
		return nil, err
	}
	l, err := NewLink(bn, parent, tn)
	if err != nil {
		return nil, err
	}
	t.registry.Store(l.ID(), l)
	logger.Debug().Str("path", path).Str("target", target).Msg("Added new link node")
	return l, nil
}

func (t *Tree) resolveTarget(target string) (Node, error) {
	if id, err := uuid.Parse(target); err == nil {
		n, ok := t.registry.Load(id)
		if err := contract.CheckArgument(ok, "no node with id %s", id); err != nil {
			return nil, err
		}
		return n, nil
	}
	return t.Lookup(target)
}

// Move moves the node at path into the directory at toDir
func (t *Tree) Move(path, toDir string) error {
	n, err := t.Lookup(path)
	if err != nil {
		return err
	}
	target, err := t.Lookup(toDir)
	if err != nil {
		return err
	}
	d, ok := asDirectory(target)
	if err := contract.CheckArgument(ok, "%q is not a directory", toDir); err != nil {
		return err
	}
	return n.Move(d)
}

// Rename renames the node at path
func (t *Tree) Rename(path, bn string) error {
	n, err := t.Lookup(path)
	if err != nil {
		return err
	}
	return n.Rename(bn)
}

// Find returns every node in the tree with base name bn
func (t *Tree) Find(bn string) (NodeSet, error) {
	return t.root.FindNodes(bn)
}

// Apply adds the node described by req and returns it. A directory that
// already exists takes the request's id, perms and mtime.
func (t *Tree) Apply(req *namefs.NodeCreateRequest) (Node, error) {
	logger := util.GetLogger("Tree.Apply")

	id, err := t.requestID(req)
	if err != nil {
		return nil, err
	}

	var n Node
	switch req.Type {
	case namefs.DirNodeType:
		comps, err := t.splitPath(req.Path)
		if err != nil {
			return nil, err
		}
		if err := contract.CheckArgument(len(comps) > 0 || id == uuid.Nil,
			"root node id cannot be set to %s", id); err != nil {
			return nil, err
		}
		d, _, err := t.ensureDir(comps, req.Path)
		if err != nil {
			return nil, err
		}
		n = d.self
	case namefs.FileNodeType:
		f, err := t.AddFileNode(req.Path)
		if err != nil {
			return nil, err
		}
		if req.Content != "" {
			f.SetByteSource(&contentSource{r: strings.NewReader(req.Content)})
			f.setSize(uint64(len(req.Content)))
		}
		n = f
	case namefs.SymlinkNodeType:
		l, err := t.AddLinkNode(req.Path, req.Target)
		if err != nil {
			return nil, err
		}
		n = l
	default:
		return nil, contract.New(contract.IllegalArgument, "unknown node type %q", req.Type)
	}

	b := n.base()
	if req.Perms != 0 {
		b.setPerms(req.Perms)
	}
	if !req.Mtime.IsZero() {
		b.setMtime(req.Mtime)
	}
	if id != uuid.Nil {
		t.registry.Delete(b.id)
		b.id = id
		t.registry.Store(id, n)
	}
	logger.Debug().Str("path", req.Path).Str("type", string(req.Type)).Str("id", b.id.String()).Msg("Applied request")
	return n, nil
}

// requestID parses the optional request UUID and checks it is unused
func (t *Tree) requestID(req *namefs.NodeCreateRequest) (uuid.UUID, error) {
	if req.UUID == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(req.UUID)
	if err != nil {
		return uuid.Nil, contract.New(contract.IllegalArgument, "invalid node id %q: %v", req.UUID, err)
	}
	_, taken := t.registry.Load(id)
	if err := contract.CheckState(!taken, "node id %s already in use", id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Walk visits every node depth first starting at the root. Children are
// visited in base name order.
func (t *Tree) Walk(fn func(n Node, depth int) error) error {
	return walk(t.root, 0, fn)
}

func walk(n Node, depth int, fn func(Node, int) error) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	d, ok := n.(interface{ ChildNodes() []Node })
	if !ok {
		return nil
	}
	children := d.ChildNodes()
	slices.SortFunc(children, func(a, b Node) int {
		an, _ := a.BaseName()
		bn, _ := b.BaseName()
		return strings.Compare(an, bn)
	})
	for _, c := range children {
		if err := walk(c, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// CheckInvariants verifies every parent and child agree on each other
// across the whole tree
func (t *Tree) CheckInvariants() error {
	if err := t.root.CheckInvariant(); err != nil {
		return err
	}
	return t.Walk(func(n Node, _ int) error {
		switch v := n.(type) {
		case *RootNode:
			return nil
		case *Directory:
			if err := v.assertClassInvariant(); err != nil {
				return err
			}
		case *File:
			if err := v.assertClassInvariant(); err != nil {
				return err
			}
		}
		return contract.CheckState(n.ParentNode().HasChildNode(n), "node %s missing from its parent", n.ID())
	})
}

// asDirectory follows links until it reaches a directory
func asDirectory(n Node) (*Directory, bool) {
	switch v := n.(type) {
	case *RootNode:
		return &v.Directory, true
	case *Directory:
		return v, true
	case *Link:
		if isNil(v.target) {
			return nil, false
		}
		return asDirectory(v.target)
	default:
		return nil, false
	}
}

// childNamed returns the single child of d named bn, or nil when there is
// none. Dangling links are skipped. Names that cannot be told apart are an InvalidState.
func childNamed(d *Directory, bn string) (Node, error) {
	var found Node
	for _, c := range d.ChildNodes() {
		if l, ok := c.(*Link); ok && isNil(l.target) {
			continue
		}
		name, err := c.BaseName()
		if err != nil {
			return nil, err
		}
		if name != bn {
			continue
		}
		if err := contract.CheckState(found == nil, "ambiguous base name %q", bn); err != nil {
			return nil, err
		}
		found = c
	}
	return found, nil
}

// contentSource serves a file's content and treats reads past the end as
// failed bytes, which the file reads as zero
type contentSource struct {
	r io.ByteReader
}

func (s *contentSource) ReadByte() (byte, error) {
	b, err := s.r.ReadByte()
	if errors.Is(err, io.EOF) {
		return 0, contract.New(contract.MethodFailed, "read past end of content")
	}
	return b, err
}
