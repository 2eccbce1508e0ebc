package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

const (
	DefaultTabWidth  = 4
	DefaultLookahead = 2
	DefaultLogLevel  = "info"

	maxTabWidth  = 16
	maxLookahead = 64
)

// Theme holds the colours used for the two highlight styles.
type Theme struct {
	Standout        string `toml:"standout"`
	Standout2       string `toml:"standout2"`
	TitlebarReverse bool   `toml:"titlebar_reverse"`
}

// Config is the user configuration. Zero values are replaced by defaults on
// load.
type Config struct {
	TabWidth         int    `toml:"tab_width"`
	LookaheadScreens int    `toml:"lookahead_screens"`
	Follow           bool   `toml:"follow"`
	Mouse            bool   `toml:"mouse"`
	LogFile          string `toml:"log_file"`
	LogLevel         string `toml:"log_level"`
	Theme            Theme  `toml:"theme"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TabWidth:         DefaultTabWidth,
		LookaheadScreens: DefaultLookahead,
		Mouse:            true,
		LogLevel:         DefaultLogLevel,
		Theme: Theme{
			Standout:        "#44aaff",
			Standout2:       "#888888",
			TitlebarReverse: true,
		},
	}
}

// Path returns the configuration file location: $RPAGER_CONFIG when set,
// otherwise rpager/config.toml under the user config directory.
func Path() (string, error) {
	if p := os.Getenv("RPAGER_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "rpager", "config.toml"), nil
}

// Load reads the configuration at path. An empty path resolves through Path.
// A missing file yields the defaults. Environment overrides are applied and the
// result is validated.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides replaces file values with RPAGER_* environment settings.
func (c *Config) ApplyEnvOverrides() {
	if file := os.Getenv("RPAGER_LOG_FILE"); file != "" {
		c.LogFile = file
	}
	if level := os.Getenv("RPAGER_LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if follow := os.Getenv("RPAGER_FOLLOW"); follow != "" {
		c.Follow = follow == "1" || strings.EqualFold(follow, "true")
	}
}

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every invalid field found by Validate.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate fills unset numeric fields with defaults and rejects values that
// cannot be used.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.TabWidth == 0 {
		c.TabWidth = DefaultTabWidth
	}
	if c.TabWidth < 0 || c.TabWidth > maxTabWidth {
		errs = append(errs, ValidationError{
			Field:   "tab_width",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", maxTabWidth, c.TabWidth),
		})
	}

	if c.LookaheadScreens == 0 {
		c.LookaheadScreens = DefaultLookahead
	}
	if c.LookaheadScreens < 0 || c.LookaheadScreens > maxLookahead {
		errs = append(errs, ValidationError{
			Field:   "lookahead_screens",
			Message: fmt.Sprintf("must be between 1 and %d, got %d", maxLookahead, c.LookaheadScreens),
		})
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("invalid level %q, must be one of: trace, debug, info, error", c.LogLevel),
		})
	}

	colors := []struct{ field, value string }{
		{"theme.standout", c.Theme.Standout},
		{"theme.standout2", c.Theme.Standout2},
	}
	for _, col := range colors {
		if col.value == "" || strings.EqualFold(col.value, "default") {
			continue
		}
		if tcell.GetColor(col.value) == tcell.ColorDefault {
			errs = append(errs, ValidationError{
				Field:   col.field,
				Message: fmt.Sprintf("unknown color %q", col.value),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
