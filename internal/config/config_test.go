package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sawyer-Powell/mont/internal/graph"
	"github.com/Sawyer-Powell/mont/internal/task"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	return dir
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.DefaultGates)
	assert.False(t, cfg.VCS.Enabled)
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, "default_gates:\n  - tests\n  - review\nvcs:\n  enabled: true\neditor: vi\n")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"tests", "review"}, cfg.DefaultGates)
	assert.True(t, cfg.VCS.Enabled)
	assert.Equal(t, "vi", cfg.Editor)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := writeConfig(t, "default_gate: [tests]\n")
	_, err := Load(dir)
	require.Error(t, err)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("MONT_EDITOR", "emacs")
	dir := writeConfig(t, "editor: vi\n")
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "emacs", cfg.Editor)
}

func TestValidate(t *testing.T) {
	g, err := graph.Build([]task.Task{
		{ID: "root-check", Kind: task.KindValidator},
		{ID: "nested-check", Kind: task.KindValidator, Before: []string{"epic"}},
		{ID: "epic", Kind: task.KindTask},
		{ID: "plain", Kind: task.KindTask},
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		gates   []string
		wantErr string
	}{
		{"valid", []string{"root-check"}, ""},
		{"missing", []string{"ghost"}, "does not exist"},
		{"not a validator", []string{"plain"}, "must be validator records"},
		{"not root", []string{"nested-check"}, "root validators"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DefaultGates: tt.gates}
			err := cfg.Validate(g)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{DefaultGates: []string{"tests"}, VCS: VCS{Enabled: true}, Editor: "vi"}
	require.NoError(t, cfg.Write(dir))

	back, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
