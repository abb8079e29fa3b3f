package config

import (
	"errors"

	"github.com/dshills/boxwin/box"
	"github.com/dshills/boxwin/renderer/core"
)

// SurfaceConfig holds the requested drawing surface size.
type SurfaceConfig struct {
	// Width and Height are the requested size; the surface may shrink them.
	Width  int
	Height int
	// TrueColor draws palette colors as exact RGB where the terminal can.
	TrueColor bool
}

// SessionConfig holds session limits and defaults.
type SessionConfig struct {
	// BoxCapacity bounds the box registry; 0 is unbounded.
	BoxCapacity  int
	SlotCapacity int
	// DefaultStyle names the border style: single, double, block or ascii.
	DefaultStyle string
}

// ColorsConfig holds the initial surface colors as names, palette indices
// or hex values.
type ColorsConfig struct {
	Foreground string
	Background string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string
	// File receives log output; empty means stderr.
	File string
}

// ScriptConfig holds the Lua script to run.
type ScriptConfig struct {
	Path  string
	Watch bool
}

// Surface returns type-safe access to surface settings.
func (c *Config) Surface() SurfaceConfig {
	return SurfaceConfig{
		Width:     c.getIntOr("surface.width", 80),
		Height:    c.getIntOr("surface.height", 24),
		TrueColor: c.getBoolOr("surface.trueColor", false),
	}
}

// Session returns type-safe access to session settings.
func (c *Config) Session() SessionConfig {
	return SessionConfig{
		BoxCapacity:  c.getIntOr("session.boxCapacity", 0),
		SlotCapacity: c.getIntOr("session.slotCapacity", 32),
		DefaultStyle: c.getStringOr("session.defaultStyle", "single"),
	}
}

// Colors returns type-safe access to the initial colors.
func (c *Config) Colors() ColorsConfig {
	return ColorsConfig{
		Foreground: c.getStringOr("colors.foreground", "gray"),
		Background: c.getStringOr("colors.background", "black"),
	}
}

// Logging returns type-safe access to logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// Script returns type-safe access to script settings.
func (c *Config) Script() ScriptConfig {
	return ScriptConfig{
		Path:  c.getStringOr("script.path", ""),
		Watch: c.getBoolOr("script.watch", false),
	}
}

// Validate checks the values the accessors return and joins every problem,
// including type errors recorded while reading them.
func (c *Config) Validate() error {
	var errs []error

	s := c.Surface()
	if s.Width < 1 {
		errs = append(errs, &ValueError{Path: "surface.width", Value: s.Width, Message: "must be positive"})
	}
	if s.Height < 1 {
		errs = append(errs, &ValueError{Path: "surface.height", Value: s.Height, Message: "must be positive"})
	}

	sess := c.Session()
	if sess.BoxCapacity < 0 {
		errs = append(errs, &ValueError{Path: "session.boxCapacity", Value: sess.BoxCapacity, Message: "must not be negative"})
	}
	if sess.SlotCapacity < 1 {
		errs = append(errs, &ValueError{Path: "session.slotCapacity", Value: sess.SlotCapacity, Message: "must be positive"})
	}
	if _, err := box.ParseGlyphStyle(sess.DefaultStyle); err != nil {
		errs = append(errs, &ValueError{Path: "session.defaultStyle", Value: sess.DefaultStyle, Message: err.Error()})
	}

	colors := c.Colors()
	if _, err := core.ParseColor(colors.Foreground); err != nil {
		errs = append(errs, &ValueError{Path: "colors.foreground", Value: colors.Foreground, Message: err.Error()})
	}
	if _, err := core.ParseColor(colors.Background); err != nil {
		errs = append(errs, &ValueError{Path: "colors.background", Value: colors.Background, Message: err.Error()})
	}

	c.Logging()
	c.Script()
	for _, err := range c.ConfigErrors() {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// The accessors below return the default only for missing settings.
// Type errors also return the default but are recorded for ConfigErrors.

func (c *Config) getStringOr(path, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !isNotFound(err) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if !isNotFound(err) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !isNotFound(err) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}
