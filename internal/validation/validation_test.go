package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"fjacquet/expense-categorizer/internal/validation"
)

func TestIsValidInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.csv")
	assert.NoError(t, os.WriteFile(testFile, []byte("Date,Description,Amount\n"), 0600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "Regular file", path: testFile},
		{name: "Directory", path: tmpDir, errContains: "is not a regular file"},
		{name: "Missing", path: filepath.Join(tmpDir, "missing.csv"), errContains: "path does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidInputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestIsValidInputDir(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.csv")
	assert.NoError(t, os.WriteFile(testFile, nil, 0600))

	assert.NoError(t, validation.IsValidInputDir(tmpDir))

	err := validation.IsValidInputDir(testFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")

	err = validation.IsValidInputDir(filepath.Join(tmpDir, "nope"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}

func TestIsValidOutputFormat(t *testing.T) {
	supported := []string{"text", "json", "yaml"}

	assert.NoError(t, validation.IsValidOutputFormat("json", supported))
	assert.NoError(t, validation.IsValidOutputFormat("YAML", supported))

	err := validation.IsValidOutputFormat("xml", supported)
	assert.EqualError(t, err, "unsupported output format: xml. Supported formats are 'text', 'json', 'yaml'")
}
