package filesystem

import (
	"fmt"
	"sync"

	"github.com/brettbedarf/namefs/config"
	"github.com/brettbedarf/namefs/contract"
	"github.com/brettbedarf/namefs/names"
	"github.com/google/uuid"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/puzpuzpuz/xsync/v4"
)

// RootNode is the top directory of a tree. It is its own parent, has an
// empty base name and cannot be moved or renamed.
type RootNode struct {
	Directory
	delimiter rune
	variant   names.Variant
}

var (
	rootOnce sync.Once
	root     *RootNode
)

// Root returns the process wide root, built with the default config on
// first use.
func Root() *RootNode {
	rootOnce.Do(func() {
		r, err := NewRoot(config.NewDefaultConfig())
		if err != nil {
			panic(fmt.Sprintf("default root: %v", err))
		}
		root = r
	})
	return root
}

// NewRoot builds an independent root. Full names below it use cfg's path
// delimiter and name variant; a nil cfg means the defaults.
func NewRoot(cfg *config.Config) (*RootNode, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, contract.New(contract.IllegalArgument, "%v", err)
	}
	r := &RootNode{
		delimiter: cfg.PathDelimiterRune(),
		variant:   cfg.Variant(),
	}
	r.children = xsync.NewMap[Node, struct{}]()
	r.self = r
	r.id = uuid.New()
	r.Inode = newInode(fuse.FUSE_ROOT_ID, DirMode)
	r.parent = &r.Directory
	if err := r.CheckInvariant(); err != nil {
		return nil, err
	}
	return r, nil
}

// FullName is the empty name
func (r *RootNode) FullName() (names.Name, error) {
	return names.Empty(r.variant, r.delimiter)
}

// Move is a no-op on the root
func (r *RootNode) Move(*Directory) error {
	return nil
}

// Rename is a no-op on the root
func (r *RootNode) Rename(string) error {
	return nil
}

// Delimiter is the delimiter of full names below r
func (r *RootNode) Delimiter() rune {
	return r.delimiter
}

// CheckInvariant verifies the root is its own parent and its directory
// invariant holds
func (r *RootNode) CheckInvariant() error {
	if err := contract.CheckState(r.parent == &r.Directory, "root must be its own parent"); err != nil {
		return err
	}
	return r.assertClassInvariant()
}
