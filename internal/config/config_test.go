package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points every config source at a fresh temp directory so tests
// never see the developer's real files or environment.
func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))
	for _, env := range []string{
		"TASKDESK_LOG_DIR",
		"TASKDESK_LOG_LEVEL",
		"TASKDESK_LOG_FORMAT",
		"TASKDESK_LOG_TIMESTAMPS",
		"TASKDESK_DEFAULT_DUE_DATE",
		"TASKDESK_DEFAULT_PRIORITY",
		"TASKDESK_ACCENT_COLOR",
		"TASKDESK_COMPLETED_DIM",
	} {
		t.Setenv(env, "")
	}
	t.Chdir(tmp)
	return tmp
}

func TestLoadDefaults(t *testing.T) {
	tmp := isolate(t)

	cfg, err := Load(nil, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel: got %q, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want text", cfg.LogFormat)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
	if cfg.DefaultPriority != "Medium" {
		t.Errorf("DefaultPriority: got %q, want Medium", cfg.DefaultPriority)
	}
	if want := filepath.Join(tmp, ".taskdesk"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
}

func TestLoadProjectConfigFile(t *testing.T) {
	isolate(t)

	content := `
log_level = "debug"
default_priority = "High"
accent_color = "63"
`
	if err := os.WriteFile("taskdesk.toml", []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cws, err := LoadWithSources(nil, nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	cfg := cws.Config

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if cfg.DefaultPriority != "High" {
		t.Errorf("DefaultPriority: got %q, want High", cfg.DefaultPriority)
	}
	if cfg.AccentColor != "63" {
		t.Errorf("AccentColor: got %q, want 63", cfg.AccentColor)
	}
	// Untouched fields keep defaults.
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat: got %q, want text", cfg.LogFormat)
	}

	if got := cws.Sources["log_level"]; got != SourceProjFile {
		t.Errorf("log_level source: got %q, want %q", got, SourceProjFile)
	}
	if got := cws.Sources["log_format"]; got != SourceDefault {
		t.Errorf("log_format source: got %q, want %q", got, SourceDefault)
	}
}

func TestLoadUserConfigFile(t *testing.T) {
	tmp := isolate(t)

	dir := filepath.Join(tmp, ".taskdesk")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `log_format = "json"` + "\n"
	if err := os.WriteFile(filepath.Join(dir, "taskdesk.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cws, err := LoadWithSources(nil, nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	if cws.Config.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cws.Config.LogFormat)
	}
	if got := cws.Sources["log_format"]; got != SourceUserFile {
		t.Errorf("log_format source: got %q, want %q", got, SourceUserFile)
	}
}

func TestProjectFileOverridesUserFile(t *testing.T) {
	tmp := isolate(t)

	dir := filepath.Join(tmp, ".taskdesk")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "taskdesk.toml"), []byte(`log_level = "warn"`+"\n"), 0644); err != nil {
		t.Fatalf("write user config: %v", err)
	}
	if err := os.WriteFile(".taskdesk.toml", []byte(`log_level = "error"`+"\n"), 0644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, err := Load(nil, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want error", cfg.LogLevel)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	isolate(t)

	if err := os.WriteFile("taskdesk.toml", []byte(`log_level = "debug"`+"\n"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("TASKDESK_LOG_LEVEL", "warn")
	t.Setenv("TASKDESK_COMPLETED_DIM", "false")

	cws, err := LoadWithSources(nil, nil)
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	if cws.Config.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cws.Config.LogLevel)
	}
	if cws.Config.CompletedDim {
		t.Error("CompletedDim: got true, want false")
	}
	if got := cws.Sources["log_level"]; got != SourceEnv {
		t.Errorf("log_level source: got %q, want %q", got, SourceEnv)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TASKDESK_LOG_LEVEL", "warn")

	fs := flag.NewFlagSet("taskdesk", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"--log-level", "debug", "--priority", "Low"})
	if err != nil {
		t.Fatalf("LoadWithSources failed: %v", err)
	}
	if cws.Config.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cws.Config.LogLevel)
	}
	if cws.Config.DefaultPriority != "Low" {
		t.Errorf("DefaultPriority: got %q, want Low", cws.Config.DefaultPriority)
	}
	if got := cws.Sources["log_level"]; got != SourceFlag {
		t.Errorf("log_level source: got %q, want %q", got, SourceFlag)
	}
	if got := cws.Sources["default_priority"]; got != SourceFlag {
		t.Errorf("default_priority source: got %q, want %q", got, SourceFlag)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	isolate(t)

	if err := os.WriteFile("taskdesk.toml", []byte("log_level = [not toml"), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	if _, err := Load(nil, nil); err == nil {
		t.Error("expected error for malformed config file, got nil")
	}
}

func TestExpandPath(t *testing.T) {
	tmp := isolate(t)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", tmp},
		{"~/.taskdesk", filepath.Join(tmp, ".taskdesk")},
		{"/var/log/taskdesk", "/var/log/taskdesk"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	isolate(t)

	t.Run("defaults are valid", func(t *testing.T) {
		cfg, err := Load(nil, nil)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if errs := cfg.Validate(); len(errs) != 0 {
			t.Errorf("expected no validation errors, got %v", errs)
		}
	})

	t.Run("bad log level is reported with its key", func(t *testing.T) {
		cfg := &Config{}
		setDefaults(cfg)
		cfg.LogLevel = "loud"

		errs := cfg.Validate()
		if len(errs) == 0 {
			t.Fatal("expected validation errors, got none")
		}
		found := false
		for _, err := range errs {
			var ve *ValidationError
			if errors.As(err, &ve) && ve.Path == "log_level" {
				found = true
			}
		}
		if !found {
			t.Errorf("no error mentions log_level: %v", errs)
		}
	})

	t.Run("empty log dir is rejected", func(t *testing.T) {
		cfg := &Config{}
		setDefaults(cfg)
		cfg.LogDir = ""

		errs := cfg.Validate()
		if len(errs) == 0 {
			t.Fatal("expected validation errors, got none")
		}
		joined := ""
		for _, err := range errs {
			joined += err.Error() + "\n"
		}
		if !strings.Contains(joined, "log_dir") {
			t.Errorf("no error mentions log_dir: %q", joined)
		}
	})
}
