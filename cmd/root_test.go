package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskdesk/internal/ui"
)

// isolate keeps the CLI away from the developer's real config and logs.
func isolate(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	t.Setenv("TASKDESK_LOG_LEVEL", "")
	t.Setenv("TASKDESK_LOG_FORMAT", "")
	t.Setenv("TASKDESK_LOG_DIR", "")
	t.Chdir(tmp)
}

func TestRun(t *testing.T) {
	t.Run("shows help with --help flag", func(t *testing.T) {
		isolate(t)
		if err := Run(context.Background(), []string{"--help"}); err != nil {
			t.Errorf("expected no error with --help, got %v", err)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		isolate(t)
		if err := Run(context.Background(), []string{"help"}); err != nil {
			t.Errorf("expected no error with help command, got %v", err)
		}
	})

	t.Run("shows version with --version flag", func(t *testing.T) {
		isolate(t)
		if err := Run(context.Background(), []string{"--version"}); err != nil {
			t.Errorf("expected no error with --version, got %v", err)
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		isolate(t)
		err := Run(context.Background(), []string{"no-such-command"})
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("config command prints without error", func(t *testing.T) {
		isolate(t)
		if err := Run(context.Background(), []string{"config"}); err != nil {
			t.Errorf("expected no error with config command, got %v", err)
		}
	})

	t.Run("check passes on default config", func(t *testing.T) {
		isolate(t)
		if err := Run(context.Background(), []string{"check"}); err != nil {
			t.Errorf("expected no error with check command, got %v", err)
		}
	})

	t.Run("check fails on invalid config", func(t *testing.T) {
		isolate(t)
		t.Setenv("TASKDESK_LOG_LEVEL", "loud")
		err := Run(context.Background(), []string{"check"})
		if err == nil {
			t.Error("expected error for invalid log level, got nil")
		}
	})

	t.Run("logs command reports no runs yet", func(t *testing.T) {
		isolate(t)
		if err := Run(context.Background(), []string{"logs"}); err != nil {
			t.Errorf("expected no error with logs command, got %v", err)
		}
	})

	t.Run("run refuses without a TTY", func(t *testing.T) {
		isolate(t)
		if ui.IsTTY(os.Stdout) {
			t.Skip("stdout is a TTY")
		}
		err := Run(context.Background(), []string{"run"})
		if err == nil {
			t.Fatal("expected error when stdout is not a TTY, got nil")
		}
		if !strings.Contains(err.Error(), "TTY") {
			t.Errorf("expected TTY error, got %v", err)
		}
	})
}
