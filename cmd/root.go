// Package cmd implements the CLI command structure for taskdesk.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"taskdesk/internal/config"
	"taskdesk/internal/logging"
	"taskdesk/internal/todo"
	"taskdesk/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the taskdesk CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskdesk", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(os.Stdout)
	}

	// Determine the subcommand; with no args the TUI starts directly.
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "run":
		return runCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(os.Stdout, cws, remainingArgs)
	case "check":
		return checkCommand(os.Stdout, cfg, remainingArgs)
	case "logs":
		return logsCommand(os.Stdout, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand(os.Stdout)
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// runCommand starts the interactive task tracker.
func runCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdesk run", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	rl, err := logging.NewRunLogger(cfg.LogDir, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
	})
	if err != nil {
		return fmt.Errorf("initializing run log: %w", err)
	}
	defer rl.Close()

	logger := rl.Logger()
	logger.Info("session started", "run_id", rl.RunID)

	// One list per process lifetime; discarded at exit.
	list := &todo.List{}
	err = ui.Run(ctx, cfg, list, logger)

	logger.Info("session ended", "tasks", list.Len())
	return err
}

// configCommand prints the effective configuration with value sources.
func configCommand(w io.Writer, cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskdesk config", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(w, "Configuration")
	fmt.Fprintln(w, "=============")
	for _, field := range config.Fields() {
		fmt.Fprintf(w, "%-18s = %-24v (%s)\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	return nil
}

// checkCommand validates the effective configuration and reports the
// result.
func checkCommand(w io.Writer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdesk check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintln(w, "Taskdesk Check")
	fmt.Fprintln(w, "==============")

	errs := cfg.Validate()
	if len(errs) == 0 {
		fmt.Fprintln(w, "  ✅ Configuration is valid")
		fmt.Fprintf(w, "  Log dir: %s\n", cfg.LogDir)
		return nil
	}

	for _, err := range errs {
		fmt.Fprintf(w, "  ❌ %v\n", err)
	}
	return fmt.Errorf("configuration has %d error(s)", len(errs))
}

// logsCommand prints the path of the latest run log, or tails it.
func logsCommand(w io.Writer, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskdesk logs", flag.ContinueOnError)
	tail := fs.Int("tail", 0, "Print the last n lines of the latest run log")
	if err := fs.Parse(args); err != nil {
		return err
	}

	latest, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return err
	}
	if latest == "" {
		fmt.Fprintln(w, "No run logs yet.")
		return nil
	}

	if *tail > 0 {
		return logging.Tail(w, latest, *tail)
	}
	fmt.Fprintln(w, latest)
	return nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "taskdesk %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: taskdesk [flags] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run       Start the interactive task tracker (default)")
	fmt.Fprintln(w, "  config    Print the effective configuration with sources")
	fmt.Fprintln(w, "  check     Validate the configuration")
	fmt.Fprintln(w, "  logs      Print the latest run log path (--tail n for contents)")
	fmt.Fprintln(w, "  version   Show version")
	fmt.Fprintln(w, "  help      Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
