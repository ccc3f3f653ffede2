package cmd

import (
	"os"
	"path/filepath"
	"syscall"
)

// StdinSource is the special source name for reading from stdin.
const StdinSource = "-"

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// UniqueSources returns sources with duplicates removed, preserving the
// order of first occurrence.
//
// Names that resolve to the same file, through symlinks or relative and
// absolute spellings, are kept once. Names that cannot be resolved are kept
// as given so that loading them reports the error. All occurrences of "-"
// collapse into a single entry placed last, so stdin is read after every
// named file.
func UniqueSources(sources []string) []string {
	if len(sources) == 0 {
		return nil
	}

	unique := make([]string, 0, len(sources))
	seenKey := make(map[fileKey]struct{})
	seenName := make(map[string]struct{})
	hasStdin := false

	for _, src := range sources {
		if src == StdinSource {
			hasStdin = true

			continue
		}

		if key, ok := resolveFileKey(src); ok {
			if _, dup := seenKey[key]; dup {
				continue
			}

			seenKey[key] = struct{}{}
		} else {
			if _, dup := seenName[src]; dup {
				continue
			}

			seenName[src] = struct{}{}
		}

		unique = append(unique, src)
	}

	if hasStdin {
		unique = append(unique, StdinSource)
	}

	return unique
}

// resolveFileKey resolves symlinks in path and returns the device/inode key
// of the file it names.
func resolveFileKey(path string) (fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
