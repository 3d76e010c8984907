package filesystem

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/brettbedarf/namefs/contract"
	"github.com/brettbedarf/namefs/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakySource fails every failAt-th byte with err
type flakySource struct {
	data   []byte
	pos    int
	failAt int
	err    error
}

func (s *flakySource) ReadByte() (byte, error) {
	s.pos++
	if s.failAt > 0 && s.pos%s.failAt == 0 {
		return 0, s.err
	}
	return s.data[(s.pos-1)%len(s.data)], nil
}

func newTestFile(t *testing.T) *File {
	t.Helper()
	return mustFile(t, "f", &newTestRoot(t).Directory)
}

func TestFile_InitialState(t *testing.T) {
	t.Parallel()

	f := newTestFile(t)
	assert.Equal(t, FileClosed, f.State())
	assert.Equal(t, "CLOSED", f.State().String())
}

func TestFile_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(f *File) error
		op      func(f *File) error
		want    FileState
		wantErr error
	}{
		{"open closed", nil, (*File).Open, FileOpen, nil},
		{"open open", (*File).Open, (*File).Open, FileOpen, contract.ErrInvalidState},
		{"open deleted", (*File).Delete, (*File).Open, FileDeleted, contract.ErrInvalidState},
		{"close open", (*File).Open, (*File).Close, FileClosed, nil},
		{"close closed", nil, (*File).Close, FileClosed, contract.ErrInvalidState},
		{"close deleted", (*File).Delete, (*File).Close, FileDeleted, contract.ErrInvalidState},
		{"delete closed", nil, (*File).Delete, FileDeleted, nil},
		{"delete open", (*File).Open, (*File).Delete, FileDeleted, nil},
		{"delete deleted", (*File).Delete, (*File).Delete, FileDeleted, contract.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newTestFile(t)
			if tt.setup != nil {
				require.NoError(t, tt.setup(f))
			}
			err := tt.op(f)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, f.State())
		})
	}
}

func TestFile_DeleteKeepsMembership(t *testing.T) {
	t.Parallel()

	f := newTestFile(t)
	require.NoError(t, f.Delete())
	assert.True(t, f.ParentNode().HasChildNode(f))
}

func TestFile_ReadPreconditions(t *testing.T) {
	t.Parallel()

	f := newTestFile(t)

	_, err := f.Read(1)
	assert.ErrorIs(t, err, contract.ErrInvalidState, "closed file")

	require.NoError(t, f.Open())
	_, err = f.Read(0)
	assert.ErrorIs(t, err, contract.ErrIllegalArgument)
	_, err = f.Read(-3)
	assert.ErrorIs(t, err, contract.ErrIllegalArgument)
	assert.Equal(t, FileOpen, f.State())
}

func TestFile_ReadLengthBound(t *testing.T) {
	t.Parallel()

	f := newTestFile(t)
	require.NoError(t, f.Open())

	_, err := f.Read(MaxReadSize + 1)
	assert.ErrorIs(t, err, contract.ErrIllegalArgument)
	_, err = f.Read(math.MaxInt)
	assert.ErrorIs(t, err, contract.ErrIllegalArgument)
	assert.Equal(t, FileOpen, f.State())

	b, err := f.Read(MaxReadSize)
	require.NoError(t, err)
	assert.Len(t, b, MaxReadSize)
}

func TestFile_ReadWithoutSource(t *testing.T) {
	t.Parallel()

	f := newTestFile(t)
	require.NoError(t, f.Open())

	b, err := f.Read(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)
	assert.Equal(t, FileOpen, f.State())
}

func TestFile_ReadFromSource(t *testing.T) {
	t.Parallel()

	f := newTestFile(t)
	f.SetByteSource(bytes.NewReader([]byte("hello world")))
	require.NoError(t, f.Open())

	b, err := f.Read(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	b, err = f.Read(6)
	require.NoError(t, err)
	assert.Equal(t, " world", string(b))
}

func TestFile_ReadAbsorbsMethodFailure(t *testing.T) {
	t.Parallel()

	f := newTestFile(t)
	f.SetByteSource(&flakySource{
		data:   []byte("abcd"),
		failAt: 2,
		err:    contract.New(contract.MethodFailed, "bad sector"),
	})
	require.NoError(t, f.Open())

	b, err := f.Read(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0, 'c', 0}, b)
	assert.Equal(t, FileOpen, f.State())
}

func TestFile_ReadPropagatesOtherFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("device gone")
	tests := []struct {
		name string
		err  error
		is   error
	}{
		{"unknown error", boom, boom},
		{"invalid state", contract.New(contract.InvalidState, "broken"), contract.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newTestFile(t)
			f.SetByteSource(&flakySource{data: []byte("x"), failAt: 1, err: tt.err})
			require.NoError(t, f.Open())

			b, err := f.Read(3)
			assert.ErrorIs(t, err, tt.is)
			assert.Nil(t, b)
		})
	}
}

func TestFile_ReadTouchesAccessTime(t *testing.T) {
	t.Parallel()

	f := newTestFile(t)
	f.attr.Atime = 0
	require.NoError(t, f.Open())
	_, err := f.Read(1)
	require.NoError(t, err)
	assert.NotZero(t, f.Attr().Atime)
}

func TestFile_ReadCallsSourcePerByte(t *testing.T) {
	t.Parallel()

	src := &mocks.MockByteSource{}
	src.On("ReadByte").Return(byte('z'), nil).Times(2)
	src.On("ReadByte").Return(nil, contract.New(contract.MethodFailed, "gap")).Once()

	f := newTestFile(t)
	f.SetByteSource(src)
	require.NoError(t, f.Open())

	b, err := f.Read(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{'z', 'z', 0}, b)
	src.AssertNumberOfCalls(t, "ReadByte", 3)
	src.AssertExpectations(t)
}

func TestFile_ReadStopsOnUnknownSourceError(t *testing.T) {
	t.Parallel()

	src := &mocks.MockByteSource{}
	src.On("ReadByte").Return(nil, io.ErrUnexpectedEOF).Once()

	f := newTestFile(t)
	f.SetByteSource(src)
	require.NoError(t, f.Open())

	_, err := f.Read(8)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	src.AssertNumberOfCalls(t, "ReadByte", 1)
	assert.Equal(t, FileOpen, f.State())
}
