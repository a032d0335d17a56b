// Package config provides configuration loading for propgen.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (PROPGEN_*)
//  2. Project config (.propgen/config.yml)
//  3. Built-in defaults
package config

import "time"

// Config represents the complete propgen configuration.
// It can be loaded from .propgen/config.yml with environment variable overrides.
type Config struct {
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Watch WatchConfig `yaml:"watch" mapstructure:"watch"`
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// PathsConfig defines which files are scanned for property declarations.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for PHP files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// WatchConfig configures the file watcher used by `propgen watch`.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"` // quiet period before re-scanning
}

// CacheConfig bounds the in-memory scan result cache.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.php",
			},
			Ignore: []string{
				"vendor/**",
				"node_modules/**",
				".git/**",
				"var/cache/**",
			},
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Cache: CacheConfig{
			MaxEntries: 1000,
		},
	}
}

// Extensions extracts unique file extensions from the include patterns.
// Returns extensions with leading dot (e.g., []string{".php"}).
func (c *Config) Extensions() []string {
	seen := make(map[string]bool)
	extensions := []string{}

	for _, pattern := range c.Paths.Include {
		ext := extractExtension(pattern)
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		extensions = append(extensions, ext)
	}

	return extensions
}

// extractExtension extracts the file extension from a glob pattern.
// Returns empty string if pattern doesn't match a simple extension pattern.
// Examples: "**/*.php" -> ".php", "*.inc" -> ".inc"
func extractExtension(pattern string) string {
	for i := len(pattern) - 1; i >= 1; i-- {
		if pattern[i] == '.' && pattern[i-1] == '*' {
			return pattern[i:]
		}
	}
	return ""
}
