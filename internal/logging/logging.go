// Package logging writes structured per-run log files.
//
// The terminal belongs to the interactive UI while taskdesk runs, so
// logs go to a file under the configured log directory, one file per
// run, named <timestamp>-<pid>.log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Options holds logger configuration, usually mapped from config strings.
type Options struct {
	Level      string
	Format     string
	Timestamps bool
}

// RunLogger owns the per-run log file and the structured logger writing
// to it.
type RunLogger struct {
	Dir     string
	RunID   string
	LogPath string
	file    *os.File
	logger  *log.Logger
}

// NewRunLogger creates the log directory if needed, opens a fresh log
// file for this run, and attaches a leveled logger to it.
func NewRunLogger(dir string, opts Options) (*RunLogger, error) {
	if dir == "" {
		return nil, fmt.Errorf("log dir is empty")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	path := filepath.Join(dir, fmt.Sprintf("%s.log", id))
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	logger := log.NewWithOptions(file, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       ParseFormatter(opts.Format),
		ReportTimestamp: opts.Timestamps,
		Prefix:          "taskdesk",
	})

	return &RunLogger{
		Dir:     dir,
		RunID:   id,
		LogPath: path,
		file:    file,
		logger:  logger,
	}, nil
}

// Logger returns the structured logger for this run.
func (r *RunLogger) Logger() *log.Logger {
	return r.logger
}

// Close closes the log file.
func (r *RunLogger) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}

// ParseLevel maps a config string to a log level. Unknown values fall
// back to info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter maps a config string to a log formatter. Unknown values
// fall back to text.
func ParseFormatter(format string) log.Formatter {
	switch format {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// FindLatestLog returns the most recently modified .log file in dir, or
// "" if there is none.
func FindLatestLog(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latest = filepath.Join(dir, entry.Name())
		}
	}
	return latest, nil
}

// Tail writes approximately the last n lines of the file at path to w.
// With n <= 0 the whole file is written.
func Tail(w io.Writer, path string, n int) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	_, err = io.Copy(w, file)
	return err
}

// tailSeek positions the file to show approximately the last n lines,
// assuming an average line length.
func tailSeek(file *os.File, n int) error {
	const avgLineLength = 100

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	size := stat.Size()
	if size < avgLineLength*int64(n) {
		_, err = file.Seek(0, io.SeekStart)
		return err
	}

	offset := size - int64(n*avgLineLength)
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return err
	}

	// Discard the partial first line.
	buf := make([]byte, 1)
	for {
		if _, err := file.Read(buf); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if buf[0] == '\n' {
			return nil
		}
	}
}
