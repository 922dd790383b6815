package batch_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/expense-categorizer/cmd/batch"
	"fjacquet/expense-categorizer/internal/config"
	"fjacquet/expense-categorizer/internal/container"
	"fjacquet/expense-categorizer/internal/logging"
)

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.NewContainer(config.Default(), container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	return c
}

func TestBatchCommand_Flags(t *testing.T) {
	assert.Equal(t, "batch", batch.Cmd.Use)
	assert.Equal(t, "i", batch.Cmd.Flags().Lookup("input").Shorthand)
	assert.Equal(t, "o", batch.Cmd.Flags().Lookup("output").Shorthand)
}

func TestRun(t *testing.T) {
	in := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(filepath.Join(in, "feb.csv"), []byte("Date,Description,Amount\n2024-02-03,Shell,-40.00\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "jan.csv"), []byte("Date,Description,Amount\n2024-01-10,Payroll,2500\n2024-01-12,Pizza Hut,-20\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.csv"), []byte("Date,Amount\n2024-01-01,1\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "readme.txt"), []byte("ignored"), 0600))

	var out bytes.Buffer
	path, err := batch.Run(context.Background(), &out, newContainer(t), in, outDir, "text")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(outDir, "categorized_2024-01-10_2024-02-03.csv"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Description,Amount,Category\n"+
		"2024-01-10,Payroll,2500.00,Income\n"+
		"2024-01-12,Pizza Hut,-20.00,Food & Dining\n"+
		"2024-02-03,Shell,-40.00,Transportation\n", string(data))

	assert.Contains(t, out.String(), "Consolidated 2 files (1 skipped, 0 potential duplicates)")
	assert.Contains(t, out.String(), "60.00")
}

func TestRun_RerunInSameDirectorySkipsExport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jan.csv"), []byte("Date,Description,Amount\n2024-01-10,Payroll,2500\n2024-01-12,Pizza Hut,-20\n"), 0600))
	c := newContainer(t)

	var first bytes.Buffer
	path, err := batch.Run(context.Background(), &first, c, dir, dir, "text")
	require.NoError(t, err)
	exported, err := os.ReadFile(path)
	require.NoError(t, err)

	var second bytes.Buffer
	again, err := batch.Run(context.Background(), &second, c, dir, dir, "text")
	require.NoError(t, err)
	assert.Equal(t, path, again)

	rewritten, err := os.ReadFile(again)
	require.NoError(t, err)
	assert.Equal(t, string(exported), string(rewritten))
	assert.Contains(t, second.String(), "Consolidated 1 files (0 skipped, 0 potential duplicates)")
	assert.Equal(t, first.String(), second.String())
}

func TestRun_EmptyDirectory(t *testing.T) {
	var out bytes.Buffer
	path, err := batch.Run(context.Background(), &out, newContainer(t), t.TempDir(), t.TempDir(), "text")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "No CSV files found.\n", out.String())
}

func TestRun_MissingDirectory(t *testing.T) {
	_, err := batch.Run(context.Background(), &bytes.Buffer{}, newContainer(t), filepath.Join(t.TempDir(), "nope"), t.TempDir(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path does not exist")
}
