package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifereel/internal/core"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHelp(t *testing.T) {
	out, err := execute(t, "-h")
	require.NoError(t, err)
	for _, flag := range []string{"--input", "--output", "--fps", "--pixels-per-cell", "--rounds", "--watermark", "--save", "--config"} {
		assert.Contains(t, out, flag)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.txt")
	require.NoError(t, os.WriteFile(input, []byte("000\n111\n000\n"), 0o644))
	output := filepath.Join(dir, "out", "run.avi")

	_, err := execute(t, "-i", input, "-o", output, "-r", "3", "-p", "16", "-s", "2", "--log-level", "warn")
	require.NoError(t, err)

	assert.FileExists(t, output)
	assert.FileExists(t, filepath.Join(dir, "out", "frame2.png"))
	assert.NoFileExists(t, filepath.Join(dir, "out", "frame1.png"))
}

func TestRenderCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "grid.txt")
	require.NoError(t, os.WriteFile(input, []byte("01\n10\n"), 0o644))
	output := filepath.Join(dir, "run.avi")
	conf := filepath.Join(dir, "lifereel.yaml")
	body := "input: " + input + "\noutput: " + output + "\nrounds: 2\npixels_per_cell: 4\nlog_level: error\n"
	require.NoError(t, os.WriteFile(conf, []byte(body), 0o644))

	_, err := execute(t, "--config", conf)
	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestRenderCommandErrors(t *testing.T) {
	_, err := execute(t, "-o", "x.avi")
	assert.ErrorIs(t, err, core.ErrConfig)

	_, err = execute(t, "stray")
	assert.Error(t, err)
}
