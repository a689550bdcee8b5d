package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".symld.kdl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".symld.kdl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
scanner {
    lenient true
}
link {
    warn-undefined true
    app-seed "main"
    check-multiple-defs true
}
output {
    verbose true
    log-file "symld.log"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Scanner.Lenient)
	assert.True(t, cfg.Link.WarnUndefined)
	assert.Equal(t, "main", cfg.Link.AppSeed)
	assert.True(t, cfg.Link.CheckMultipleDefs)
	assert.True(t, cfg.Output.Verbose)
	assert.False(t, cfg.Output.Quiet)
	assert.Equal(t, "symld.log", cfg.Output.LogFile)
}

func TestLoadPartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
output {
    quiet true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Output.Quiet)
	assert.False(t, cfg.Scanner.Lenient)
	assert.Empty(t, cfg.Link.AppSeed)
}

func TestLoadMalformedConfigFails(t *testing.T) {
	path := writeConfig(t, `link { warn-undefined `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestParseKDLIgnoresUnknownNodes(t *testing.T) {
	cfg, err := parseKDL(`
future-section {
    something "else"
}
scanner {
    lenient true
}
`)
	require.NoError(t, err)
	assert.True(t, cfg.Scanner.Lenient)
}
