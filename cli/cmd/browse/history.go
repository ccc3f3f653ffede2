package browse

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

const (
	baseHistory = "browse.history"
	maxHistory  = 100
)

// History records recently chosen keys, oldest first, persisted one per line.
type History struct {
	path    string
	entries []string
	mu      sync.RWMutex
}

// NewHistory creates a new History instance with the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads history entries from the history file. A missing file is not an
// error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			h.entries = append(h.entries, line)
		}
	}

	return scanner.Err()
}

// Add records key as the most recent entry, dropping any earlier occurrence.
func (h *History) Add(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = slices.DeleteFunc(h.entries, func(s string) bool { return s == key })
	h.entries = append(h.entries, key)

	if n := len(h.entries); n > maxHistory {
		h.entries = slices.Clone(h.entries[n-maxHistory:])
	}
}

// Save writes all entries to the history file, creating its directory.
func (h *History) Save() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}

	var b strings.Builder
	for _, e := range h.entries {
		b.WriteString(e)
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Recent returns the entries, newest first.
func (h *History) Recent() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	recent := slices.Clone(h.entries)
	slices.Reverse(recent)

	return recent
}
