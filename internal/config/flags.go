package config

import (
	"flag"
)

// parseFlags defines and parses CLI flags over cfg. Flags bind directly
// to config fields, so defaults shown in usage reflect the values loaded
// from files and environment. Visit tells us which flags were set
// explicitly, for source tracking.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]Source) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskdesk", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for run logs")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error, fatal)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.StringVar(&cfg.DefaultDueDate, "due", cfg.DefaultDueDate, "Prefill for the due date field")
	fs.StringVar(&cfg.DefaultPriority, "priority", cfg.DefaultPriority, "Prefill for the priority field")
	fs.StringVar(&cfg.AccentColor, "accent", cfg.AccentColor, "Accent color for the UI")
	fs.BoolVar(&cfg.CompletedDim, "completed-dim", cfg.CompletedDim, "Dim completed tasks in the list")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		flagToField := map[string]string{
			"log-dir":        "log_dir",
			"log-level":      "log_level",
			"log-format":     "log_format",
			"log-timestamps": "log_timestamps",
			"due":            "default_due_date",
			"priority":       "default_priority",
			"accent":         "accent_color",
			"completed-dim":  "completed_dim",
		}
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagToField[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}

	return nil
}
