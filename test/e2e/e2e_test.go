package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	namefsBin string
	projRoot  string
)

func TestMain(m *testing.M) {
	// Build namefs binary once for all tests
	tmpBinDir, err := os.MkdirTemp("", "namefs-bin")
	if err != nil {
		panic(err)
	}

	namefsBin = filepath.Join(tmpBinDir, "namefs")

	// Determine project root
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot determine current file path")
	}
	projRoot = filepath.Join(filepath.Dir(thisFile), "..", "..")

	cmd := exec.Command("go", "build", "-o", namefsBin, "./cmd/namefs")
	cmd.Dir = projRoot
	if out, err := cmd.CombinedOutput(); err != nil {
		panic(string(out))
	}

	code := m.Run()
	if err := os.RemoveAll(tmpBinDir); err != nil {
		panic(err)
	}
	os.Exit(code)
}

// runNamefs runs the built binary and returns stdout, stderr and the exit
// error
func runNamefs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(namefsBin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func writeDefs(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestE2ENameRoundTrip(t *testing.T) {
	escaped, _, err := runNamefs(t, "name", "escape", "Oh..")
	require.NoError(t, err)
	escaped = strings.TrimSpace(escaped)
	assert.Equal(t, `Oh\.\.`, escaped)

	plain, _, err := runNamefs(t, "name", "unescape", escaped)
	require.NoError(t, err)
	assert.Equal(t, "Oh..", strings.TrimSpace(plain))
}

func TestE2EParseExample(t *testing.T) {
	out, _, err := runNamefs(t, "name", "parse", "oss.cs.fau.de")
	require.NoError(t, err)
	assert.Contains(t, out, "components: 4")
	assert.Contains(t, out, "data: oss.cs.fau.de")
}

func TestE2ETreeFromDefinitions(t *testing.T) {
	defs := writeDefs(t, "defs.json", `[
		{"type": "file", "path": "srv/www/index.html", "content": "<html></html>"},
		{"type": "symlink", "path": "www", "target": "srv/www"}
	]`)

	out, stderr, err := runNamefs(t, "-v", "4", "tree", defs)
	require.NoError(t, err, stderr)
	assert.Equal(t, `d srv
d srv/www
f srv/www/index.html (13 bytes)
l www -> srv/www
`, out)
	assert.Contains(t, stderr, "Tree built")
}

func TestE2EErrorsExitNonZero(t *testing.T) {
	_, stderr, err := runNamefs(t, "name", "parse", `dangling\`)
	require.Error(t, err)
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.Contains(t, stderr, "IllegalArgument")
}
