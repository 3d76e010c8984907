package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defsYAML = `
- path: etc
  type: dir
  uuid: 6f1c2a7e-1d0b-4a8e-9a53-7d1b1e6a0c11
- path: etc/motd
  type: file
  content: hello
- path: usr/bin/ls
  type: file
- path: home/etc
  type: symlink
  target: 6f1c2a7e-1d0b-4a8e-9a53-7d1b1e6a0c11
- path: home/motd
  type: symlink
  target: etc/motd
`

func TestTreeCmd_YAML(t *testing.T) {
	path := writeFile(t, "defs.yaml", defsYAML)

	out, err := run(t, "tree", path)
	require.NoError(t, err)
	assert.Equal(t, `d etc
d home
d usr
d usr/bin
f etc/motd (5 bytes)
f usr/bin/ls (0 bytes)
l home/etc -> etc
l home/motd -> etc/motd
`, out)
}

func TestTreeCmd_Find(t *testing.T) {
	path := writeFile(t, "defs.yaml", defsYAML)

	out, err := run(t, "tree", path, "--find", "motd")
	require.NoError(t, err)
	assert.Equal(t, "f etc/motd (5 bytes)\nl home/motd -> etc/motd\n", out)
}

func TestTreeCmd_JSONWithPathDelimiter(t *testing.T) {
	cfg := writeFile(t, "cfg.json", `{"path_delimiter": ":"}`)
	defs := writeFile(t, "defs.json", `[
		{"path": "a:b/c", "type": "file"}
	]`)

	out, err := run(t, "-c", cfg, "tree", defs)
	require.NoError(t, err)
	assert.Equal(t, "d a\nf a:b/c (0 bytes)\n", out)
}

func TestTreeCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr string
	}{
		{"unknown extension", "defs.txt", "[]", "unknown definition file extension"},
		{"invalid definition", "defs.yaml", "- path: a\n  type: socket\n", "invalid node definition 0"},
		{"symlink without target", "defs.yaml", "- path: a\n  type: symlink\n", "invalid node definition 0"},
		{"duplicate file", "defs.yaml", "- path: a\n  type: file\n- path: a\n  type: file\n", "failed to add file"},
		{"missing target", "defs.yaml", "- path: a\n  type: symlink\n  target: nowhere\n", "failed to add symlink"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.data)
			_, err := run(t, "tree", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
