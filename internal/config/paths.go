package config

import (
	"path/filepath"
	"strings"
)

// resolve makes raw absolute, relative to the directory holding the config
// file. An empty raw falls back to fallback.
func (c *AppConfig) resolve(raw, fallback string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = fallback
	}
	if target == "" {
		return ""
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	base := c.baseDir
	if base == "" {
		base = "."
	}
	if abs, err := filepath.Abs(filepath.Join(base, target)); err == nil {
		return abs
	}
	return filepath.Join(base, target)
}

func (c *AppConfig) LogDir() string { return c.resolve(c.Paths.Logs, "logs") }

// StaticDir holds uploaded media when the local driver is used.
func (c *AppConfig) StaticDir() string { return c.resolve(c.Paths.Static, "static") }

// AdminDir is the optional static admin panel; empty disables the mount.
func (c *AppConfig) AdminDir() string { return c.resolve(c.Paths.Admin, "") }
