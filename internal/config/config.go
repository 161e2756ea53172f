package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/1broseidon/frametile/internal/frame"
)

const (
	DefaultMinimumFrameSize  = frame.DefaultMinimumSize
	DefaultBumpStep          = 40
	DefaultReconcileInterval = "2s"
)

// Gaps configures the space left around frames.
type Gaps struct {
	// Inner is the gap between two neighboring windows. Each window gives up
	// half of it on every side.
	Inner int `yaml:"inner" toml:"inner"`
	// Outer is subtracted from every monitor edge before tiling.
	Outer int `yaml:"outer" toml:"outer"`
}

// Config holds the application configuration.
type Config struct {
	Display           string            `yaml:"display,omitempty" toml:"display,omitempty"`
	MinimumFrameSize  int               `yaml:"minimum_frame_size" toml:"minimum_frame_size"`
	Gaps              Gaps              `yaml:"gaps" toml:"gaps"`
	AutoEqualize      bool              `yaml:"auto_equalize" toml:"auto_equalize"`
	DefaultSplit      string            `yaml:"default_split" toml:"default_split"`
	RemoveVoids       bool              `yaml:"remove_voids" toml:"remove_voids"`
	BumpStep          int               `yaml:"bump_step" toml:"bump_step"`
	ReconcileInterval string            `yaml:"reconcile_interval" toml:"reconcile_interval"`
	LogLevel          string            `yaml:"log_level" toml:"log_level"`
	Bindings          map[string]string `yaml:"bindings" toml:"bindings"`
	IgnoreClasses     []string          `yaml:"ignore_classes" toml:"ignore_classes"`
}

func DefaultConfig() *Config {
	return &Config{
		MinimumFrameSize:  DefaultMinimumFrameSize,
		AutoEqualize:      true,
		DefaultSplit:      "horizontal",
		BumpStep:          DefaultBumpStep,
		ReconcileInterval: DefaultReconcileInterval,
		LogLevel:          "info",
		Bindings:          DefaultBindings(),
		IgnoreClasses:     []string{},
	}
}

// DefaultBindings maps keybind sequences to actions.
func DefaultBindings() map[string]string {
	return map[string]string{
		"Mod4-h":         "focus-left",
		"Mod4-j":         "focus-down",
		"Mod4-k":         "focus-up",
		"Mod4-l":         "focus-right",
		"Mod4-Shift-h":   "move-left",
		"Mod4-Shift-j":   "move-down",
		"Mod4-Shift-k":   "move-up",
		"Mod4-Shift-l":   "move-right",
		"Mod4-Control-h": "exchange-left",
		"Mod4-Control-j": "exchange-down",
		"Mod4-Control-k": "exchange-up",
		"Mod4-Control-l": "exchange-right",
		"Mod4-Mod1-h":    "bump-left",
		"Mod4-Mod1-j":    "bump-bottom",
		"Mod4-Mod1-k":    "bump-top",
		"Mod4-Mod1-l":    "bump-right",
		"Mod4-backslash": "split-horizontal",
		"Mod4-minus":     "split-vertical",
		"Mod4-x":         "remove",
		"Mod4-equal":     "equalize",
		"Mod4-z":         "stash",
		"Mod4-Shift-z":   "unstash",
	}
}

// ReconcileEvery parses ReconcileInterval. Validate guarantees it parses.
func (c *Config) ReconcileEvery() time.Duration {
	d, err := time.ParseDuration(c.ReconcileInterval)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultReconcileInterval)
	}
	return d
}

// SplitDirection returns the parsed default split direction.
func (c *Config) SplitDirection() frame.SplitDirection {
	dir, err := frame.ParseSplitDirection(c.DefaultSplit)
	if err != nil || dir == frame.SplitNone {
		return frame.SplitHorizontal
	}
	return dir
}

// Ignored reports whether windows of class are never tiled.
func (c *Config) Ignored(class string) bool {
	for _, ignored := range c.IgnoreClasses {
		if strings.EqualFold(ignored, class) {
			return true
		}
	}
	return false
}

// SortedBindings returns the binding keys in a stable order.
func (c *Config) SortedBindings() []string {
	keys := make([]string, 0, len(c.Bindings))
	for k := range c.Bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type ValidationError struct {
	Path string
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate performs strict validation of the configuration. Binding actions
// are checked by the tiler, which owns the action grammar.
func (c *Config) Validate() error {
	if c.MinimumFrameSize < 1 {
		return &ValidationError{Path: "minimum_frame_size", Err: fmt.Errorf("minimum_frame_size must be >= 1")}
	}
	if c.Gaps.Inner < 0 || c.Gaps.Outer < 0 {
		return &ValidationError{Path: "gaps", Err: fmt.Errorf("gap values must be >= 0")}
	}
	if c.Gaps.Inner%2 != 0 {
		return &ValidationError{Path: "gaps.inner", Err: fmt.Errorf("inner gap must be even")}
	}
	if c.Gaps.Inner >= c.MinimumFrameSize {
		return &ValidationError{Path: "gaps.inner", Err: fmt.Errorf("inner gap must be smaller than minimum_frame_size")}
	}
	dir, err := frame.ParseSplitDirection(c.DefaultSplit)
	if err != nil || dir == frame.SplitNone {
		return &ValidationError{Path: "default_split", Err: fmt.Errorf("default_split must be one of: horizontal, vertical")}
	}
	if c.BumpStep < 1 {
		return &ValidationError{Path: "bump_step", Err: fmt.Errorf("bump_step must be >= 1")}
	}
	if d, err := time.ParseDuration(c.ReconcileInterval); err != nil {
		return &ValidationError{Path: "reconcile_interval", Err: err}
	} else if d < 100*time.Millisecond {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("reconcile_interval must be at least 100ms")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.Bindings == nil {
		return &ValidationError{Path: "bindings", Err: fmt.Errorf("bindings must not be null")}
	}
	for _, key := range c.SortedBindings() {
		if strings.TrimSpace(key) == "" {
			return &ValidationError{Path: "bindings", Err: fmt.Errorf("bindings contains an empty key sequence")}
		}
	}
	return nil
}

// Save writes the configuration to path in the format its extension names, or to the standard location
// when path is empty.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, c, formatForPath(path)); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
