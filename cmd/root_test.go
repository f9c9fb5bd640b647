package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scribe/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runCall struct {
	cfg  *config.Config
	path string
}

// stubRunner swaps out the editor for the duration of the test.
func stubRunner(t *testing.T) *[]runCall {
	t.Helper()
	calls := &[]runCall{}
	original := runEditor
	runEditor = func(cfg *config.Config, logger *slog.Logger, path string) error {
		logger.Info("stub run")
		*calls = append(*calls, runCall{cfg: cfg, path: path})
		return nil
	}
	t.Cleanup(func() { runEditor = original })
	return calls
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRootCmd_DefaultsFromMissingConfig(t *testing.T) {
	calls := stubRunner(t)
	dir := t.TempDir()

	err := execute(t, "--config", filepath.Join(dir, "none.json"), "--log-file", "-")
	require.NoError(t, err)
	require.Len(t, *calls, 1)

	call := (*calls)[0]
	assert.Equal(t, "", call.path)
	assert.Equal(t, config.Default().Theme, call.cfg.Theme)
	assert.Equal(t, config.HighlighterPattern, call.cfg.Highlighter)
	assert.False(t, call.cfg.NativeDialogs)
}

func TestRootCmd_FileArgument(t *testing.T) {
	calls := stubRunner(t)
	dir := t.TempDir()

	err := execute(t, "--config", filepath.Join(dir, "none.json"), "--log-file", "-", "notes.txt")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "notes.txt", (*calls)[0].path)
}

func TestRootCmd_RejectsExtraArguments(t *testing.T) {
	calls := stubRunner(t)

	err := execute(t, "--log-file", "-", "a.txt", "b.txt")
	require.Error(t, err)
	assert.Empty(t, *calls)
}

func TestRootCmd_FlagsOverrideConfigFile(t *testing.T) {
	calls := stubRunner(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"theme":"nord","tab_size":8,"highlighter":"pattern"}`), 0o644))

	err := execute(t, "--config", cfgPath, "--log-file", "-",
		"--theme", "dark", "--highlighter", "chroma", "--native-dialogs")
	require.NoError(t, err)
	require.Len(t, *calls, 1)

	cfg := (*calls)[0].cfg
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, config.HighlighterChroma, cfg.Highlighter)
	assert.True(t, cfg.NativeDialogs)
	assert.Equal(t, 8, cfg.TabSize)
}

func TestRootCmd_ConfigFileKeptWithoutFlags(t *testing.T) {
	calls := stubRunner(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"theme":"monokai","native_dialogs":true}`), 0o644))

	require.NoError(t, execute(t, "--config", cfgPath, "--log-file", "-"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "monokai", (*calls)[0].cfg.Theme)
	assert.True(t, (*calls)[0].cfg.NativeDialogs)
}

func TestRootCmd_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "none.json")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"theme", []string{"--theme", "neon"}, `unknown theme "neon"`},
		{"highlighter", []string{"--highlighter", "lsp"}, `unknown highlighter "lsp"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubRunner(t)
			args := append([]string{"--config", missing, "--log-file", "-"}, tt.args...)
			err := execute(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, *calls)
		})
	}
}

func TestRootCmd_BrokenConfigFile(t *testing.T) {
	calls := stubRunner(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{not json`), 0o644))

	err := execute(t, "--config", cfgPath, "--log-file", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
	assert.Empty(t, *calls)
}

func TestRootCmd_WritesLogFile(t *testing.T) {
	stubRunner(t)
	dir := t.TempDir()
	logPath := filepath.Join(dir, "state", "scribe.log")

	require.NoError(t, execute(t, "--config", filepath.Join(dir, "none.json"), "--log-file", logPath, "x.txt"))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	log := string(data)
	assert.Contains(t, log, "msg=starting")
	assert.Contains(t, log, "file=x.txt")
	assert.Contains(t, log, `msg="stub run"`)
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")
	assert.Equal(t, filepath.Join("/state", "scribe", "scribe.log"), defaultLogPath())

	home := t.TempDir()
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)
	got := defaultLogPath()
	assert.True(t, strings.HasPrefix(got, home), "expected %s under %s", got, home)
	assert.True(t, strings.HasSuffix(got, filepath.Join(".local", "state", "scribe", "scribe.log")))
}

func TestRootCmd_SaveConfigPersistsOverrides(t *testing.T) {
	calls := stubRunner(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.json")

	require.NoError(t, execute(t, "--config", cfgPath, "--log-file", "-",
		"--theme", "nord", "--highlighter", "chroma", "--save-config"))
	require.Len(t, *calls, 1)

	saved, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "nord", saved.Theme)
	assert.Equal(t, config.HighlighterChroma, saved.Highlighter)
}

func TestRootCmd_WithoutSaveConfigLeavesFileAlone(t *testing.T) {
	stubRunner(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.json")

	require.NoError(t, execute(t, "--config", cfgPath, "--log-file", "-", "--theme", "nord"))
	_, err := os.Stat(cfgPath)
	assert.True(t, os.IsNotExist(err))
}
