package main

import (
	"bytes"
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photocull/internal/config"
	"photocull/internal/errors"
	"photocull/internal/log"
	"photocull/pkg/testutils"
	"photocull/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against a private config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.Execute()
	return out.String(), err
}

func photoFolder(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	for i, name := range []string{"b.jpg", "a.png", "c.jpg"} {
		var path string
		if strings.HasSuffix(name, ".png") {
			path = testutils.WritePNG(t, dir, name, 4, 4, color.White)
		} else {
			path = testutils.WriteJPEG(t, dir, name, 4, 4, color.White)
		}
		testutils.Touch(t, path, base.Add(time.Duration(2-i)*time.Hour))
	}
	testutils.CreateTestFilesWithContent(t, dir, map[string]string{"notes.txt": "not a photo"})
	return dir
}

func TestLogJSONFlag(t *testing.T) {
	t.Cleanup(func() { log.Configure() })
	dir := photoFolder(t)

	out, err := execute(t, "--log-json", "scan", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"message":"Scanned 3 photos"`)
	assert.Contains(t, out, `"folder":"`+dir+`"`)
}

func TestScanCommand(t *testing.T) {
	dir := photoFolder(t)

	t.Run("table by name", func(t *testing.T) {
		out, err := execute(t, "scan", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "3 photos")
		assert.NotContains(t, out, "notes.txt")
		assert.Less(t, strings.Index(out, "a.png"), strings.Index(out, "b.jpg"))
		assert.Less(t, strings.Index(out, "b.jpg"), strings.Index(out, "c.jpg"))
	})

	t.Run("json by modtime", func(t *testing.T) {
		out, err := execute(t, "scan", dir, "--json", "--order", "modtime")
		require.NoError(t, err)

		var records []types.PhotoRecord
		require.NoError(t, json.Unmarshal([]byte(out), &records))
		require.Len(t, records, 3)
		assert.Equal(t, []string{"c.jpg", "a.png", "b.jpg"}, []string{records[0].Name(), records[1].Name(), records[2].Name()})
		assert.NotEmpty(t, records[0].ID)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := execute(t, "scan", dir, "--order", "size")
		var cfgErr *errors.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "--order", cfgErr.Param())
	})

	t.Run("missing folder", func(t *testing.T) {
		_, err := execute(t, "scan", filepath.Join(dir, "nope"))
		assert.True(t, errors.IsFileNotFound(err))
	})

	t.Run("empty folder", func(t *testing.T) {
		out, err := execute(t, "scan", t.TempDir())
		require.NoError(t, err)
		assert.Contains(t, out, "No photos found.")
	})
}

func TestConfigCommands(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "sub", "config.yaml")
	run := func(args ...string) (string, error) {
		root := NewRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(append([]string{"--config", cfgPath}, args...))
		err := root.Execute()
		return out.String(), err
	}

	out, err := run("config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)

	out, err = run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+cfgPath)
	loaded, err := config.LoadConfigFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, config.New(), loaded)

	_, err = run("config", "init")
	assert.Error(t, err, "init refuses to overwrite")
	_, err = run("config", "init", "--force")
	assert.NoError(t, err)

	require.NoError(t, os.WriteFile(cfgPath, []byte("move:\n  collision: skip\n"), 0644))
	out, err = run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "collision: skip")
	assert.Contains(t, out, "discard_dir: Discarded")
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("move:\n  workers: 0\n"), 0644))

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "config", "show"})
	err := root.Execute()
	assert.True(t, errors.IsInvalidConfig(err))
}
