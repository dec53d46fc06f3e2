package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileState is what the last conversion of a source file recorded
type FileState struct {
	MTime  int64  `json:"mtime"`
	Hash   string `json:"hash"`
	Output string `json:"output"` // file the conversion wrote
}

// State maps source paths to their last conversion
type State struct {
	Files map[string]*FileState `json:"files"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{Files: make(map[string]*FileState)}
}

// Load reads state from path. A missing file yields an empty state.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewState(), nil
	}
	if err != nil {
		return nil, err
	}

	st := NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}
	if st.Files == nil {
		st.Files = make(map[string]*FileState)
	}
	return st, nil
}

// Save writes state to path through a temporary file so an interrupted
// run never leaves a truncated state behind
func (s *State) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// ComputeHash returns "sha256:<hex>" for the contents of path
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return "sha256:" + hex.EncodeToString(h.Sum(nil)), nil
}

// HasChanged reports whether path differs from its last conversion.
// An equal mtime is trusted; otherwise the content hash decides.
func (s *State) HasChanged(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	prev, ok := s.Files[path]
	switch {
	case !ok:
		return true, nil
	case info.ModTime().Unix() == prev.MTime:
		return false, nil
	}

	hash, err := ComputeHash(path)
	if err != nil {
		return false, err
	}
	return hash != prev.Hash, nil
}

// Update records that source was converted into output
func (s *State) Update(source, output string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}
	hash, err := ComputeHash(source)
	if err != nil {
		return err
	}

	s.Files[source] = &FileState{
		MTime:  info.ModTime().Unix(),
		Hash:   hash,
		Output: output,
	}
	return nil
}

// Produced reports whether output was written by a recorded conversion
func (s *State) Produced(output string) bool {
	for _, prev := range s.Files {
		if prev.Output == output {
			return true
		}
	}
	return false
}

// Forget drops a file from the state
func (s *State) Forget(path string) {
	delete(s.Files, path)
}

// Prune forgets every source under dir that no longer exists and returns
// the forgotten paths
func (s *State) Prune(dir string) []string {
	var gone []string
	for src := range s.Files {
		rel, err := filepath.Rel(dir, src)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
			gone = append(gone, src)
		}
	}
	for _, src := range gone {
		s.Forget(src)
	}
	return gone
}

// GetMTime returns the source modification time recorded at its last conversion
func (s *State) GetMTime(path string) time.Time {
	if prev, ok := s.Files[path]; ok {
		return time.Unix(prev.MTime, 0)
	}
	return time.Time{}
}
