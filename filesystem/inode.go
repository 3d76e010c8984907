package filesystem

import (
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
)

// Mode type bits and default permissions per node kind
const (
	DirMode     = uint32(syscall.S_IFDIR | 0o755)
	FileMode    = uint32(syscall.S_IFREG | 0o644)
	SymlinkMode = uint32(syscall.S_IFLNK | 0o777)
)

// lastIno is the last inode number handed out; the root always owns
// fuse.FUSE_ROOT_ID so numbering starts after it
var lastIno atomic.Uint64

func init() {
	lastIno.Store(fuse.FUSE_ROOT_ID)
}

func nextIno() uint64 {
	return lastIno.Add(1)
}

// Inode holds the attributes of a node in fuse wire format.
type Inode struct {
	attr fuse.Attr
}

func newInode(ino uint64, mode uint32) *Inode {
	return &Inode{attr: newDefaultAttr(ino, mode)}
}

// Attr returns a copy of the node's attributes
func (i *Inode) Attr() fuse.Attr {
	return i.attr
}

// Ino returns the inode number
func (i *Inode) Ino() uint64 {
	return i.attr.Ino
}

// IsDir reports whether the mode marks a directory
func (i *Inode) IsDir() bool {
	return i.attr.Mode&syscall.S_IFMT == syscall.S_IFDIR
}

// IsRegular reports whether the mode marks a regular file
func (i *Inode) IsRegular() bool {
	return i.attr.Mode&syscall.S_IFMT == syscall.S_IFREG
}

// IsSymlink reports whether the mode marks a symbolic link
func (i *Inode) IsSymlink() bool {
	return i.attr.Mode&syscall.S_IFMT == syscall.S_IFLNK
}

// touch updates the change and modification times
func (i *Inode) touch() {
	now := time.Now()
	i.attr.Mtime = uint64(now.Unix())
	i.attr.Mtimensec = uint32(now.Nanosecond())
	i.attr.Ctime = i.attr.Mtime
	i.attr.Ctimensec = i.attr.Mtimensec
}

// newDefaultAttr returns the default attributes for a new node
func newDefaultAttr(ino uint64, mode uint32) fuse.Attr {
	now := time.Now()
	return fuse.Attr{
		Ino:   ino,
		Mode:  mode,
		Nlink: 1,
		Owner: fuse.Owner{
			Uid: uint32(os.Getuid()),
			Gid: uint32(os.Getgid()),
		},
		Atime:     uint64(now.Unix()),
		Mtime:     uint64(now.Unix()),
		Ctime:     uint64(now.Unix()),
		Atimensec: uint32(now.Nanosecond()),
		Mtimensec: uint32(now.Nanosecond()),
		Ctimensec: uint32(now.Nanosecond()),
		Blksize:   4096, // preferred size for fs ops
	}
}

// touchAccess updates the access time
func (i *Inode) touchAccess() {
	now := time.Now()
	i.attr.Atime = uint64(now.Unix())
	i.attr.Atimensec = uint32(now.Nanosecond())
}

// setPerms replaces the permission bits and keeps the type bits
func (i *Inode) setPerms(perms uint32) {
	i.attr.Mode = i.attr.Mode&syscall.S_IFMT | perms&0o7777
}

func (i *Inode) setMtime(t time.Time) {
	i.attr.Mtime = uint64(t.Unix())
	i.attr.Mtimensec = uint32(t.Nanosecond())
}

func (i *Inode) setSize(size uint64) {
	i.attr.Size = size
	i.attr.Blocks = (size + 511) / 512
}
