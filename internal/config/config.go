// Package config handles configuration loading and defaults.
package config

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultLogDir        = "~/.taskdesk"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogTimestamps = true
	DefaultPriority      = "Medium"
	DefaultAccentColor   = "212"
	DefaultCompletedDim  = true
)

// Config holds the full configuration for taskdesk.
type Config struct {
	// Logging
	LogDir        string `toml:"log_dir" json:"log_dir"`
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogFormat     string `toml:"log_format" json:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" json:"log_timestamps"`

	// Input form prefills
	DefaultDueDate  string `toml:"default_due_date" json:"default_due_date"`
	DefaultPriority string `toml:"default_priority" json:"default_priority"`

	// Appearance
	AccentColor  string `toml:"accent_color" json:"accent_color"`
	CompletedDim bool   `toml:"completed_dim" json:"completed_dim"`
}

// ConfigWithSources holds configuration along with source information for
// each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]Source
}

// configFields returns the configurable field names, in display order,
// for source tracking.
func configFields() []string {
	return []string{
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"default_due_date",
		"default_priority",
		"accent_color",
		"completed_dim",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the current value of a field by its config key.
func (c *Config) Value(field string) any {
	switch field {
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return c.LogTimestamps
	case "default_due_date":
		return c.DefaultDueDate
	case "default_priority":
		return c.DefaultPriority
	case "accent_color":
		return c.AccentColor
	case "completed_dim":
		return c.CompletedDim
	default:
		return nil
	}
}

func setDefaults(cfg *Config) {
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = DefaultLogTimestamps
	cfg.DefaultDueDate = ""
	cfg.DefaultPriority = DefaultPriority
	cfg.AccentColor = DefaultAccentColor
	cfg.CompletedDim = DefaultCompletedDim
}
