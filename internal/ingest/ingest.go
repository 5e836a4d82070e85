// Package ingest collects the local files for one submission: explicit paths
// and/or a directory walk, filtered to the upload-allowed extensions.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rakapratama/permit-extractor/constants"
)

// Stats summarizes one collection pass.
type Stats struct {
	Scanned uint32
	Matched uint32
	Skipped uint32
	Failed  uint32
}

// AllowedExt checks if a file extension is in the allowed upload set.
func AllowedExt(ext string) bool {
	ext = constants.NormalizeExt(ext)
	_, ok := constants.AllowedExtensions[ext]
	return ok
}

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}

// CollectFiles gathers upload candidates from explicit paths and, when root
// is non-empty, a recursive directory walk. Hidden entries are skipped and
// only allowed extensions match. Explicit paths must exist and be allowed;
// the walk silently skips non-matching files.
func CollectFiles(paths []string, root string) ([]string, Stats, error) {
	var out []string
	var stats Stats

	for _, p := range paths {
		stats.Scanned++
		st, err := os.Stat(p)
		if err != nil {
			return nil, stats, fmt.Errorf("stat %s: %w", p, err)
		}
		if st.IsDir() {
			return nil, stats, fmt.Errorf("%s is a directory; use the directory flag", p)
		}
		if !AllowedExt(filepath.Ext(p)) {
			return nil, stats, fmt.Errorf("%s: only PDF files can be submitted", p)
		}
		stats.Matched++
		out = append(out, p)
	}

	if strings.TrimSpace(root) != "" {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			stats.Scanned++
			if walkErr != nil {
				stats.Failed++
				return nil // continue walking
			}
			if IsHidden(path) && path != root {
				if d.IsDir() {
					return filepath.SkipDir
				}
				stats.Skipped++
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !AllowedExt(filepath.Ext(path)) {
				stats.Skipped++
				return nil
			}
			stats.Matched++
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, stats, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	if len(out) == 0 {
		return nil, stats, errors.New("no PDF files found to submit")
	}
	return out, stats, nil
}
