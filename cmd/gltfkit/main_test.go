package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gltfkit/gltfkit-go/internal/testdoc"
	"github.com/gltfkit/gltfkit-go/pkg/version"
)

func TestRunDispatch(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{"no command", nil, 1, "", "Usage:"},
		{"help", []string{"help"}, 0, "Commands:", ""},
		{"version", []string{"version"}, 0, "gltfkit " + version.Tool, ""},
		{"unknown", []string{"frob"}, 1, "", "Unknown command: frob"},
		{"bad global flag", []string{"-nope", "info"}, 1, "", ""},
		{"bad log level", []string{"-log-level", "loud", "info", "x.gltf"}, 1, "", "invalid log level"},
		{"missing config", []string{"-config", "absent.yaml", "info", "x.gltf"}, 1, "", "Error:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.code, run(tt.args, &stdout, &stderr))
			assert.Contains(t, stdout.String(), tt.stdout)
			assert.Contains(t, stderr.String(), tt.stderr)
		})
	}
}

func TestRunWithTrace(t *testing.T) {
	dir := t.TempDir()
	path := testdoc.WriteTriangle(t, dir)
	trace := filepath.Join(dir, "run.glog")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-log-level", "error", "-trace", trace, "accessor", path, "1"}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "accessor 1: 3 x SCALAR/UNSIGNED_SHORT")

	info, err := os.Stat(trace)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	stdout.Reset()
	require.Equal(t, 0, run([]string{"trace", "stats", trace}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Total Events:")
}
