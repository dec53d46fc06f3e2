package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"github.com/ajithraghavan/qmd/convert"
	"github.com/ajithraghavan/qmd/internal/config"
	"github.com/ajithraghavan/qmd/internal/logger"
	"github.com/ajithraghavan/qmd/internal/state"
)

// Runner converts every source file under a directory into a sibling file
type Runner struct {
	config    *config.Config
	state     *state.State
	converter *convert.Converter
	logger    *logger.Logger
	DryRun    bool // If true, don't write files or update state
	Force     bool // If true, convert unchanged files and replace destinations qmd did not write
	Reverse   bool // If true, convert OMD to markdown
}

// New creates a new batch runner
func New(cfg *config.Config, st *state.State, conv *convert.Converter) *Runner {
	return &Runner{
		config:    cfg,
		state:     st,
		converter: conv,
		logger:    logger.Discard(),
	}
}

// SetLogger sets the logger for the runner
func (r *Runner) SetLogger(l *logger.Logger) {
	r.logger = l
}

// Result represents the result of a batch run
type Result struct {
	RunID          string
	FilesProcessed int
	Skipped        int
	Conflicts      []string // sources whose destination qmd did not write
	Converted      []string // destination paths, in processing order
	Errors         []error
	StartTime      time.Time
	EndTime        time.Time
}

// Direction names the conversion a run performs
func (r *Runner) Direction() string {
	if r.Reverse {
		return "omd→md"
	}
	return "md→omd"
}

func (r *Runner) extensions() (src, dst string) {
	if r.Reverse {
		return r.config.OMDExt, r.config.MarkdownExt
	}
	return r.config.MarkdownExt, r.config.OMDExt
}

// Run converts all matching files under dir.
// Per-file failures are collected in the result; only a failed scan or a
// cancelled context ends the run early.
func (r *Runner) Run(ctx context.Context, dir string) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	log := r.logger.WithRun(result.RunID)
	log.BatchStarted(dir, r.Direction())

	excludes, err := CompileExcludes(r.config.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	srcExt, dstExt := r.extensions()
	files, err := ScanDirectory(dir, srcExt, excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	if !r.DryRun {
		for _, src := range r.state.Prune(dir) {
			log.Debug("forgot removed source", "source", src)
		}
	}

	for _, src := range files {
		if err := ctx.Err(); err != nil {
			result.EndTime = time.Now()
			return result, err
		}

		dst := strings.TrimSuffix(src, srcExt) + dstExt

		if !r.Force && r.upToDate(src, dst) {
			result.Skipped++
			log.Skipped(src, "unchanged since "+r.state.GetMTime(src).Format(time.DateTime))
			continue
		}

		// Never replace a file qmd did not write, such as the markdown a
		// reverse run would derive from its own output
		if !r.Force && r.foreign(dst) {
			result.Conflicts = append(result.Conflicts, src)
			log.Skipped(src, "destination exists")
			continue
		}

		saved, err := r.convertFile(src, dst, log)
		if err != nil {
			result.Errors = append(result.Errors, err)
			log.ConversionError(src, dst, err)
			continue
		}

		result.FilesProcessed++
		result.Converted = append(result.Converted, dst)
		if r.DryRun {
			log.Info("dry run, not writing", "source", src, "dest", dst)
			continue
		}
		log.FileConverted(src, dst, saved)
	}

	result.EndTime = time.Now()
	log.BatchCompleted(result.FilesProcessed, result.Skipped, len(result.Errors), result.EndTime.Sub(result.StartTime))
	return result, nil
}

// upToDate reports whether src is unchanged since its last conversion
// and its output still exists
func (r *Runner) upToDate(src, dst string) bool {
	changed, err := r.state.HasChanged(src)
	if err != nil || changed {
		return false
	}
	_, err = os.Stat(dst)
	return err == nil
}

// foreign reports whether dst exists without being the recorded output
// of an earlier conversion
func (r *Runner) foreign(dst string) bool {
	if _, err := os.Stat(dst); err != nil {
		return false
	}
	return !r.state.Produced(dst)
}

// convertFile converts src into dst and returns the bytes saved
func (r *Runner) convertFile(src, dst string, log *logger.Logger) (int, error) {
	content, err := os.ReadFile(src)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", src, err)
	}

	var out string
	if r.Reverse {
		out, err = r.converter.OMDToMarkdown(string(content))
	} else {
		out, err = r.converter.MarkdownToOMD(string(content))
	}
	if err != nil {
		return 0, fmt.Errorf("failed to convert %s: %w", src, err)
	}

	if r.DryRun {
		return len(content) - len(out), nil
	}

	if err := os.WriteFile(dst, []byte(out), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", dst, err)
	}

	if err := r.state.Update(src, dst); err != nil {
		log.StateError("update", err)
	}

	return len(content) - len(out), nil
}

// CompileExcludes compiles exclude patterns. Patterns use '/' as the
// separator, so '*' stays within one path segment and '**' crosses them.
func CompileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Excluded reports whether rel, a slash separated path relative to the
// scanned directory, matches any exclude pattern. The base name is tried
// as well so that "*.draft.md" applies at any depth.
func Excluded(rel string, excludes []glob.Glob) bool {
	base := filepath.Base(rel)
	for _, g := range excludes {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// ScanDirectory scans a directory for files with given extension
func ScanDirectory(dir string, ext string, excludes []glob.Glob) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && Excluded(rel+"/", excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) == ext && !Excluded(rel, excludes) {
			files = append(files, path)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

// String returns a human-readable summary of the batch result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Batch complete: %d files converted, %d unchanged, %d conflicts, %d errors (took %v)",
		r.FilesProcessed,
		r.Skipped,
		len(r.Conflicts),
		len(r.Errors),
		duration.Round(time.Millisecond),
	)
}
