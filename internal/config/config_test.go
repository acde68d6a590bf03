package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh vault directory for the duration of the test so
// FindVaultRoot resolves deterministically.
func chdir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".todotxt"), 0755))
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { os.Chdir(old) })
	// Resolve symlinks so paths compare equal on systems where TempDir is
	// itself a symlink.
	resolved, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	return resolved
}

func TestLoadConfigDefaults(t *testing.T) {
	root := chdir(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "todo.txt"), cfg.TodoFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DefaultHistorySize, cfg.HistorySize)
	assert.Equal(t, DefaultLLMBaseURL, cfg.LLMBaseURL)
	assert.Equal(t, DefaultAIMaxRetries, cfg.AIMaxRetries)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	root := chdir(t)

	content := `
[todo]
file = "tasks/work.txt"
history_size = 50

[logging]
level = "debug"

[llm]
base_url = "https://api.example.com/v1/"
model = "small-model"
max_retries = 5
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".todotxt", "config.toml"), []byte(content), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "tasks", "work.txt"), cfg.TodoFile)
	assert.Equal(t, 50, cfg.HistorySize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://api.example.com/v1", cfg.LLMBaseURL, "trailing slash is trimmed")
	assert.Equal(t, "small-model", cfg.LLMModel)
	assert.Equal(t, 5, cfg.AIMaxRetries)
}

func TestEnvOverridesFile(t *testing.T) {
	root := chdir(t)

	content := `
[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ".todotxt", "config.toml"), []byte(content), 0644))
	t.Setenv("TODOTXT_LOG_LEVEL", "warn")
	t.Setenv("TODOTXT_HISTORY_SIZE", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7, cfg.HistorySize)
}

func TestValidateRejectsBadValues(t *testing.T) {
	chdir(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	cfg.HistorySize = 0
	assert.Error(t, cfg.Validate())

	cfg.HistorySize = DefaultHistorySize
	cfg.LLMBaseURL = ""
	assert.Error(t, cfg.Validate())
}

func TestFindVaultRootWalksUp(t *testing.T) {
	root := chdir(t)

	nested := filepath.Join(root, "notes", "daily")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.Chdir(nested))

	found, err := FindVaultRoot()
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(found)
	require.NoError(t, err)
	assert.Equal(t, root, resolved)
}
