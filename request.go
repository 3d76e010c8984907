// Package namefs holds the request types shared by the tree builder and
// the entrypoints that decode node definitions.
package namefs

import "time"

// NodeCreateRequestType valid types are FileNodeType "file", DirNodeType
// "dir" and SymlinkNodeType "symlink"
type NodeCreateRequestType string

const (
	FileNodeType    NodeCreateRequestType = "file"
	DirNodeType     NodeCreateRequestType = "dir"
	SymlinkNodeType NodeCreateRequestType = "symlink"
)

// NodeCreateRequest describes one node to add to a tree. It should be passed
// from entrypoints (cli, definition files) to the tree's Apply method.
type NodeCreateRequest struct {
	Path  string
	Type  NodeCreateRequestType
	UUID  string    // Optional identity so links can refer to the node by id
	Perms uint32    // i.e. 0755
	Mtime time.Time // Last Modified at (Default current time)
	// Target is the path or UUID of the node a symlink points at
	Target string
	// Content is served by reads of a file node
	Content string
}
