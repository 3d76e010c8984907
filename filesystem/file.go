package filesystem

import (
	"errors"
	"io"

	"github.com/brettbedarf/namefs/contract"
	"github.com/brettbedarf/namefs/internal/util"
)

// FileState is the lifecycle state of a File
type FileState int

const (
	FileClosed FileState = iota
	FileOpen
	FileDeleted
)

func (s FileState) String() string {
	switch s {
	case FileClosed:
		return "CLOSED"
	case FileOpen:
		return "OPEN"
	case FileDeleted:
		return "DELETED"
	default:
		return "UNKNOWN"
	}
}

// File is a leaf node with a CLOSED -> OPEN -> CLOSED lifecycle. DELETED is
// terminal and only reached through Delete.
type File struct {
	node
	state  FileState
	source io.ByteReader
}

// NewFile creates a closed file named bn and adds it to parent
func NewFile(bn string, parent *Directory) (*File, error) {
	f := &File{state: FileClosed}
	if err := f.init(f, bn, parent, FileMode); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) State() FileState {
	return f.state
}

// SetByteSource sets where Read takes its bytes from. With no source every
// byte read is zero.
func (f *File) SetByteSource(src io.ByteReader) {
	f.source = src
}

func (f *File) Open() error {
	if err := contract.CheckState(f.state != FileDeleted, "cannot open deleted file"); err != nil {
		return err
	}
	if err := contract.CheckState(f.state == FileClosed, "file is already open"); err != nil {
		return err
	}
	f.setState(FileOpen)
	return f.assertClassInvariant()
}

func (f *File) Close() error {
	if err := contract.CheckState(f.state != FileDeleted, "cannot close deleted file"); err != nil {
		return err
	}
	if err := contract.CheckState(f.state == FileOpen, "file is not open"); err != nil {
		return err
	}
	f.setState(FileClosed)
	return f.assertClassInvariant()
}

// Delete moves the file into the terminal DELETED state. The file stays in
// its parent directory.
func (f *File) Delete() error {
	if err := contract.CheckState(f.state != FileDeleted, "file is already deleted"); err != nil {
		return err
	}
	f.setState(FileDeleted)
	return f.assertClassInvariant()
}

// MaxReadSize is the largest length a single Read accepts
const MaxReadSize = 1 << 20

// Read returns the next n bytes of the open file. A byte the source fails
// to produce with a MethodFailed is read as zero; any other source error is
// returned.
func (f *File) Read(n int) ([]byte, error) {
	logger := util.GetLogger("File.Read")

	if err := contract.CheckArgument(n > 0, "read length must be positive, got %d", n); err != nil {
		return nil, err
	}
	if err := contract.CheckArgument(n <= MaxReadSize, "read length %d exceeds %d", n, MaxReadSize); err != nil {
		return nil, err
	}
	if err := contract.CheckState(f.state == FileOpen, "file is not open"); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	for i := range n {
		b, err := f.readNextByte()
		if errors.Is(err, contract.ErrMethodFailed) {
			logger.Debug().Err(err).Int("offset", i).Msg("Byte read failed, using zero")
			continue
		}
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}

	if err := contract.CheckResult(f.state == FileOpen, "file not open after read"); err != nil {
		return nil, err
	}
	f.touchAccess()
	return buf, f.assertClassInvariant()
}

func (f *File) readNextByte() (byte, error) {
	if f.source == nil {
		return 0, nil
	}
	return f.source.ReadByte()
}

func (f *File) setState(s FileState) {
	logger := util.GetLogger("File")
	logger.Debug().Str("file", f.id.String()).Stringer("from", f.state).Stringer("to", s).Msg("State change")
	f.state = s
}

func (f *File) assertClassInvariant() error {
	valid := f.state == FileClosed || f.state == FileOpen || f.state == FileDeleted
	return contract.CheckState(valid, "file %s in unknown state %d", f.id, f.state)
}
