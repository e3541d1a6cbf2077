package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommand_Flags(t *testing.T) {
	opts := &options{}
	cmd := newCommand(opts)

	require.NoError(t, cmd.ParseFlags([]string{"--seed", "42", "--months", "2", "--per-month", "3", "--overwrite"}))

	assert.Equal(t, int64(42), opts.seed)
	assert.Equal(t, 2, opts.months)
	assert.Equal(t, 3, opts.perMonth)
	assert.True(t, opts.overwrite)
	assert.Equal(t, "./whmcs-sandbox.db", opts.dbPath)

	seed := cmd.Flags().Lookup("seed")
	require.NotNil(t, seed)
	assert.Contains(t, seed.Usage, "invoice numbers are always random")
}

func TestNewCommand_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "whmcs.db")

	cmd := newCommand(&options{})
	cmd.SetArgs([]string{"--db", dbPath, "--months", "1", "--per-month", "2", "--seed", "7"})
	require.NoError(t, cmd.Execute())

	cmd = newCommand(&options{})
	cmd.SetArgs([]string{"--db", dbPath})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--overwrite")
}
