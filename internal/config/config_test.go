package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("EXPENSE_TEST_VALUE=from-file\n"), 0600))
	t.Setenv("EXPENSE_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("EXPENSE_TEST_VALUE"))

	loaded := loadEnvFile(filepath.Join(dir, "missing.env"), envFile)

	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "from-file", os.Getenv("EXPENSE_TEST_VALUE"))
}

func TestLoadEnvFile_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("EXPENSE_TEST_VALUE=from-file\n"), 0600))
	t.Setenv("EXPENSE_TEST_VALUE", "from-env")

	loadEnvFile(envFile)

	assert.Equal(t, "from-env", os.Getenv("EXPENSE_TEST_VALUE"))
}

func TestLoadEnvFile_NoCandidates(t *testing.T) {
	assert.Equal(t, "", loadEnvFile(filepath.Join(t.TempDir(), ".env")))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("EXPENSE_TEST_GETENV", "set")
	assert.Equal(t, "set", GetEnv("EXPENSE_TEST_GETENV", "fallback"))
	assert.Equal(t, "fallback", GetEnv("EXPENSE_TEST_GETENV_UNSET", "fallback"))
}
