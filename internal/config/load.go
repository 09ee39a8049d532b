package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
//  1. Defaults
//  2. User config file (~/.taskdesk/taskdesk.toml or OS config dir)
//  3. Project config file (taskdesk.toml or .taskdesk.toml in the
//     current directory)
//  4. Environment variables (TASKDESK_*)
//  5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg, _, err := load(fs, args, false)
	return cfg, err
}

// LoadWithSources loads configuration and tracks the source of each value.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cfg, sources, err := load(fs, args, true)
	if err != nil {
		return nil, err
	}
	return &ConfigWithSources{Config: cfg, Sources: sources}, nil
}

func load(fs *flag.FlagSet, args []string, track bool) (*Config, map[string]Source, error) {
	cfg := &Config{}

	var sources map[string]Source
	if track {
		sources = make(map[string]Source)
	}

	// 1. Defaults
	setDefaults(cfg)
	if track {
		for _, field := range configFields() {
			sources[field] = SourceDefault
		}
	}

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file (overrides user config)
	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Environment
	loadFromEnv(cfg, sources)

	// 5. CLI flags override everything
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Derived values
	cfg.LogDir = expandPath(cfg.LogDir)

	return cfg, sources, nil
}

// findUserConfigFile returns the first existing user-level config file.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".taskdesk", "taskdesk.toml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "taskdesk", "taskdesk.toml"))
	}
	for _, path := range candidates {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			return path
		}
	}
	return ""
}

// findProjectConfigFile returns the config file in the current directory,
// if any.
func findProjectConfigFile() string {
	for _, name := range []string{"taskdesk.toml", ".taskdesk.toml"} {
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			return name
		}
	}
	return ""
}

// loadConfigFile decodes a TOML file over cfg. Only keys present in the
// file override earlier values; unknown keys are ignored.
func loadConfigFile(cfg *Config, path string, sources map[string]Source, source Source) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if sources != nil {
		for _, field := range configFields() {
			if md.IsDefined(field) {
				sources[field] = source
			}
		}
	}
	return nil
}
