// Package config loads and validates the casement configuration file.
//
// Settings flow through two shapes: RawConfig mirrors the YAML with
// pointer fields so "absent" and "zero" stay distinct, and Config is the
// fully defaulted, validated form the rest of the library consumes.
package config

import (
	"fmt"
	"strings"
)

// ValidationError reports a rejected configuration value, keyed by its
// YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// WindowDefaults seeds builder attributes for windows created without an
// explicit value.
type WindowDefaults struct {
	Title       string
	Width       int
	Height      int
	Resizable   bool
	Decorations bool
	Visible     bool
	AlwaysOnTop bool
}

// Logging controls the process-wide slog setup.
type Logging struct {
	Level  string // debug, info, warning, error
	Format string // text, json
}

// Config is the effective configuration after defaults and merging.
type Config struct {
	Backend string // auto, x11, headless
	Logging Logging
	Window  WindowDefaults
}

// Default returns the built-in configuration, used when no file exists
// and as the base layer under any file that does.
func Default() *Config {
	return &Config{
		Backend: "auto",
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
		Window: WindowDefaults{
			Title:       "casement",
			Width:       1024,
			Height:      768,
			Resizable:   true,
			Decorations: true,
			Visible:     true,
		},
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "auto", "x11", "headless":
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: auto, x11, headless")}
	}
	switch c.Logging.Level {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warning, error")}
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return &ValidationError{Path: "logging.format", Err: fmt.Errorf("format must be one of: text, json")}
	}
	if strings.TrimSpace(c.Window.Title) == "" {
		return &ValidationError{Path: "window.title", Err: fmt.Errorf("title must not be empty")}
	}
	if c.Window.Width <= 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Window.Height <= 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be > 0")}
	}
	return nil
}
