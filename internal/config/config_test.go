package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RPAGER_CONFIG", "RPAGER_LOG_FILE", "RPAGER_LOG_LEVEL", "RPAGER_FOLLOW"} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadReadsFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
tab_width = 8
lookahead_screens = 3
follow = true
mouse = false
log_file = "/tmp/rpager.log"
log_level = "DEBUG"

[theme]
standout = "red"
standout2 = "#00ff00"
titlebar_reverse = false
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.TabWidth)
	require.Equal(t, 3, cfg.LookaheadScreens)
	require.True(t, cfg.Follow)
	require.False(t, cfg.Mouse)
	require.Equal(t, "/tmp/rpager.log", cfg.LogFile)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, Theme{Standout: "red", Standout2: "#00ff00"}, cfg.Theme)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "follow = true\n"))
	require.NoError(t, err)
	require.True(t, cfg.Follow)
	require.Equal(t, DefaultTabWidth, cfg.TabWidth)
	require.True(t, cfg.Mouse)
	require.Equal(t, "#44aaff", cfg.Theme.Standout)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "tab_width = [\n"))
	require.Error(t, err)
}

func TestLoadResolvesPathFromEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "tab_width = 2\n")
	t.Setenv("RPAGER_CONFIG", path)

	got, err := Path()
	require.NoError(t, err)
	require.Equal(t, path, got)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 2, cfg.TabWidth)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RPAGER_LOG_FILE", "/var/log/rpager.log")
	t.Setenv("RPAGER_LOG_LEVEL", "trace")
	t.Setenv("RPAGER_FOLLOW", "1")

	cfg, err := Load(writeConfig(t, "log_level = \"error\"\n"))
	require.NoError(t, err)
	require.Equal(t, "/var/log/rpager.log", cfg.LogFile)
	require.Equal(t, "trace", cfg.LogLevel)
	require.True(t, cfg.Follow)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.TabWidth = -1
	cfg.LookaheadScreens = 1000
	cfg.LogLevel = "loud"
	cfg.Theme.Standout = "not-a-colour"

	err := cfg.Validate()
	var verrs ValidateErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 4)
	require.Equal(t, "tab_width", verrs[0].Field)
	require.Equal(t, "lookahead_screens", verrs[1].Field)
	require.Equal(t, "log_level", verrs[2].Field)
	require.Equal(t, "theme.standout", verrs[3].Field)
}

func TestValidateFillsZeroValues(t *testing.T) {
	cfg := &Config{Theme: Theme{Standout: "default"}}
	require.NoError(t, cfg.Validate())
	require.Equal(t, DefaultTabWidth, cfg.TabWidth)
	require.Equal(t, DefaultLookahead, cfg.LookaheadScreens)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}
