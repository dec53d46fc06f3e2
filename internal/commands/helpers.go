package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ajithraghavan/qmd/convert"
	"github.com/ajithraghavan/qmd/internal/config"
	"github.com/ajithraghavan/qmd/internal/logger"
	"github.com/ajithraghavan/qmd/internal/styles"
)

// ParseLogFile reads the last N lines from the log file and extracts the
// time and file count of the most recent batch run
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	// Get last N lines
	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastBatch time.Time
	filesConverted := 0

	// Look for most recent "batch completed" line
	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if strings.Contains(line, "batch completed") {
			// Format: 2025-11-27 14:11:57 INFO batch completed run_id=... files_converted=3
			if len(line) > 19 {
				if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
					lastBatch = t
				}
			}

			if idx := strings.Index(line, "files_converted="); idx != -1 {
				_, _ = fmt.Sscanf(line[idx:], "files_converted=%d", &filesConverted) //nolint:errcheck // best effort parsing
			}
			break
		}
	}

	return recentLines, lastBatch, filesConverted
}

// ioArgs holds the positional input and --out flag of the conversion commands
type ioArgs struct {
	input  string // "-" for stdin
	output string // empty for stdout
}

func parseIOArgs(args []string) (ioArgs, error) {
	a := ioArgs{input: "-"}
	seenInput := false

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--out" || arg == "-o":
			if i+1 >= len(args) {
				return a, fmt.Errorf("%s requires a path", arg)
			}
			a.output = args[i+1]
			i++
		case strings.HasPrefix(arg, "--out="):
			a.output = strings.TrimPrefix(arg, "--out=")
		case strings.HasPrefix(arg, "-") && arg != "-":
			return a, fmt.Errorf("unknown flag: %s", arg)
		default:
			if seenInput {
				return a, fmt.Errorf("unexpected argument: %s", arg)
			}
			a.input = arg
			seenInput = true
		}
	}

	return a, nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

func writeOutput(path, content string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, content)
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// hasFlag reports whether flag appears in args
func hasFlag(args []string, flag string) bool {
	for _, arg := range args {
		if arg == flag {
			return true
		}
	}
	return false
}

// positional returns the arguments that are not flags
func positional(args []string) []string {
	var out []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			out = append(out, arg)
		}
	}
	return out
}

// setupLogger opens the configured log file, falling back to a discarding logger
func setupLogger(cfg *config.Config) (*logger.Logger, func()) {
	if cfg.LogFile == "" {
		return logger.Discard(), func() {}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return logger.Discard(), func() {}
	}

	l, cleanup, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return logger.Discard(), func() {}
	}

	l.ConfigLoaded(config.ConfigPath(), cfg.UncheckedTaskMarker, cfg.MatchTimeout)
	return l, cleanup
}

// loadConverter loads the configuration and builds its converter, exiting on failure
func loadConverter() (*config.Config, *convert.Converter) {
	cfg, err := config.Load()
	if err != nil {
		fail("Error loading config", err)
	}

	conv, err := cfg.Converter()
	if err != nil {
		fail("Invalid configuration", err)
	}

	return cfg, conv
}

func fail(context string, err error) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+context+": "+err.Error()))
	os.Exit(1)
}
