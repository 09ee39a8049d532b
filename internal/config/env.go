package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from TASKDESK_* environment variables.
// If sources is non-nil, it tracks the source of each overridden value.
func loadFromEnv(cfg *Config, sources map[string]Source) {
	setString := func(env, field string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
			if sources != nil {
				sources[field] = SourceEnv
			}
		}
	}
	setBool := func(env, field string, dst *bool) {
		v := os.Getenv(env)
		if v == "" {
			return
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return
		}
		*dst = parsed
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	setString("TASKDESK_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TASKDESK_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKDESK_LOG_FORMAT", "log_format", &cfg.LogFormat)
	setBool("TASKDESK_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps)
	setString("TASKDESK_DEFAULT_DUE_DATE", "default_due_date", &cfg.DefaultDueDate)
	setString("TASKDESK_DEFAULT_PRIORITY", "default_priority", &cfg.DefaultPriority)
	setString("TASKDESK_ACCENT_COLOR", "accent_color", &cfg.AccentColor)
	setBool("TASKDESK_COMPLETED_DIM", "completed_dim", &cfg.CompletedDim)
}
