package command

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericbuess/claude-code-docs-installer/internal/platform"
)

func TestWriteCreatesCommandFile(t *testing.T) {
	commandsDir := filepath.Join(t.TempDir(), "commands")
	installDir := "/home/u/.claude-code-docs"

	path, err := Write(commandsDir, installDir, platform.Linux)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(commandsDir, FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), installDir+"/claude-docs-helper.sh")
	assert.Contains(t, string(data), `Execute: `+installDir+`/claude-docs-helper.sh "$ARGUMENTS"`)
}

func TestWriteReplacesExistingFile(t *testing.T) {
	commandsDir := filepath.Join(t.TempDir(), "commands")
	require.NoError(t, os.MkdirAll(commandsDir, 0o755))
	path := filepath.Join(commandsDir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	_, err := Write(commandsDir, "/new/install", platform.Linux)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Contains(t, string(data), "/new/install")
}

func TestContentWindowsInvokesPython(t *testing.T) {
	got := Content(`C:\Users\u\.claude-code-docs`, platform.Windows)
	assert.Contains(t, got, "python")
	assert.Contains(t, got, "claude-docs-helper.py")
	assert.NotContains(t, got, "claude-docs-helper.sh")
}

func TestRemoveDeletesFileAndPrunesEmptyDir(t *testing.T) {
	commandsDir := filepath.Join(t.TempDir(), "commands")
	_, err := Write(commandsDir, "/install", platform.Linux)
	require.NoError(t, err)

	removed, err := Remove(commandsDir)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = os.Stat(commandsDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveKeepsDirWithOtherCommands(t *testing.T) {
	commandsDir := filepath.Join(t.TempDir(), "commands")
	_, err := Write(commandsDir, "/install", platform.Linux)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(commandsDir, "other.md"), []byte("keep"), 0o644))

	removed, err := Remove(commandsDir)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = os.Stat(commandsDir)
	assert.NoError(t, err)
}

func TestRemoveMissingFileIsNoop(t *testing.T) {
	removed, err := Remove(filepath.Join(t.TempDir(), "commands"))
	require.NoError(t, err)
	assert.False(t, removed)
}
