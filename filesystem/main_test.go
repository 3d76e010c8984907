package filesystem

import (
	"io"
	"os"
	"testing"

	"github.com/brettbedarf/namefs/internal/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// TestMain keeps tree and file debug logging out of the test output
func TestMain(m *testing.M) {
	util.InitializeLoggerTo(io.Discard, util.ErrorLevel)
	os.Exit(m.Run())
}

func TestLoggerQuietDuringTests(t *testing.T) {
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
}
