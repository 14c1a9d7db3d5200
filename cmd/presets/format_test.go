package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDiff(t *testing.T) {
	a := []byte("1\n2\n3\n4\n5\n6\n7\n")
	b := []byte("1\n2\n3\nfour\n5\n6\n7\n")

	tests := []struct {
		name        string
		contextSize int
		contains    []string
		excludes    []string
	}{
		{"Default", 3, []string{" 1\n", " 7\n"}, nil},
		{"Narrow", 1, []string{" 3\n", " 5\n"}, []string{" 1\n", " 2\n", " 6\n", " 7\n"}},
		{"Whole", -1, []string{" 1\n", " 7\n"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeDiff(context.Background(), &buf, "presets.hcl", a, b, tt.contextSize, false))
			out := buf.String()

			assert.Contains(t, out, "--- a/presets.hcl\n+++ b/presets.hcl\n")
			assert.Contains(t, out, "@@ ")
			assert.Contains(t, out, "-4\n+four\n")
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "presets.hcl")
	src := "preset {\nrequired=\"main.html\"\n}\n"
	require.NoError(t, os.WriteFile(fpath, []byte(src), 0644))

	cmd := &FormatCommand{ContextSize: 3}
	var buf bytes.Buffer
	require.NoError(t, cmd.format(context.Background(), &buf, fpath, newManifestChecker(), false))
	assert.Contains(t, buf.String(), `-required="main.html"`)
	assert.Contains(t, buf.String(), `+  required = "main.html"`)

	data, err := os.ReadFile(fpath)
	require.NoError(t, err)
	assert.Equal(t, src, string(data))

	cmd.Overwrite = true
	buf.Reset()
	require.NoError(t, cmd.format(context.Background(), &buf, fpath, newManifestChecker(), false))
	assert.Empty(t, buf.String())
	data, err = os.ReadFile(fpath)
	require.NoError(t, err)
	assert.Equal(t, "preset {\n  required = \"main.html\"\n}\n", string(data))

	buf.Reset()
	require.NoError(t, cmd.format(context.Background(), &buf, fpath, nil, false))
	assert.Empty(t, buf.String())
}

func TestFormat_Invalid(t *testing.T) {
	fpath := filepath.Join(t.TempDir(), "presets.hcl")
	require.NoError(t, os.WriteFile(fpath, []byte("mods {\n}\n"), 0644))

	cmd := &FormatCommand{}
	err := cmd.format(context.Background(), &bytes.Buffer{}, fpath, newManifestChecker(), false)
	assert.ErrorIs(t, err, errInvalidManifest)

	err = cmd.format(context.Background(), &bytes.Buffer{}, fpath, nil, false)
	assert.NoError(t, err)
}

func TestManifestPaths(t *testing.T) {
	assert.Equal(t, []string{defaultManifest}, manifestPaths(nil))
	assert.Equal(t, []string{"a.hcl", "b.hcl"}, manifestPaths([]string{"b.hcl", "a.hcl", "b.hcl"}))
}
