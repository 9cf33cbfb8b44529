package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromPath_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, DefaultHighlightStyle, cfg.HighlightStyle)
	assert.Equal(t, DefaultPoolSize, cfg.PoolSize)

	absPath, _ := filepath.Abs(tmpDir)
	assert.Equal(t, absPath, cfg.ProjectRoot)
}

func TestLoadFromPath_CustomFile(t *testing.T) {
	tmpDir := t.TempDir()

	content := "highlight_style: pygments\npool_size: 16\ntables: true\nmath: true\n"
	configPath := filepath.Join(tmpDir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "pygments", cfg.HighlightStyle)
	assert.Equal(t, 16, cfg.PoolSize)
	assert.True(t, cfg.Tables)
	assert.True(t, cfg.Math)
	assert.False(t, cfg.Strikethrough)
}

func TestLoadFromPath_WalksUpDirectoryTree(t *testing.T) {
	root := t.TempDir()
	content := "highlight_style: pygments\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := LoadFromPath(nested)
	require.NoError(t, err)

	absRoot, _ := filepath.Abs(root)
	assert.Equal(t, absRoot, cfg.ProjectRoot)
	assert.Equal(t, "pygments", cfg.HighlightStyle)
}

func TestLoadFromPath_NearestConfigWins(t *testing.T) {
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "subdir")
	require.NoError(t, os.MkdirAll(nestedDir, 0o755))

	require.NoError(t, os.WriteFile(
		filepath.Join(tmpDir, ConfigFileName),
		[]byte("highlight_style: pygments\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(nestedDir, ConfigFileName),
		[]byte("highlight_style: semantic\npool_size: 4\n"),
		0o644,
	))

	cfg, err := LoadFromPath(nestedDir)
	require.NoError(t, err)

	absNested, _ := filepath.Abs(nestedDir)
	assert.Equal(t, absNested, cfg.ProjectRoot)
	assert.Equal(t, 4, cfg.PoolSize)
}

func TestLoadFromPath_InvalidHighlightStyle(t *testing.T) {
	tmpDir := t.TempDir()
	content := "highlight_style: rainbow\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0o644))

	_, err := LoadFromPath(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rainbow")
}

func TestLoadFromPath_MissingHighlightStyle_UsesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	content := "pool_size: 12\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, DefaultHighlightStyle, cfg.HighlightStyle)
	assert.Equal(t, 12, cfg.PoolSize)
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	content := "highlight_style: [unterminated\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0o644))

	_, err := LoadFromPath(tmpDir)
	require.Error(t, err)
}
