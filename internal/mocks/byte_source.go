package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"
)

// MockByteSource implements io.ByteReader for testing file reads across
// packages
type MockByteSource struct {
	mock.Mock
}

func (m *MockByteSource) ReadByte() (byte, error) {
	args := m.Called()

	// Handle function return types (for sequenced tests)
	if fn, ok := args.Get(0).(func() byte); ok {
		return fn(), args.Error(1)
	}

	if args.Get(0) == nil {
		return 0, args.Error(1)
	}
	return args.Get(0).(byte), args.Error(1)
}

var _ io.ByteReader = (*MockByteSource)(nil)
