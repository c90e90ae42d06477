// Package importer copies category files into a catalog directory, skipping
// files that do not parse and applying MD5-based conflict resolution.
package importer

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kamusis/deck-cli/internal/catalog"
)

// ConflictPair records a conflict found during import.
type ConflictPair struct {
	Original string // path of the file already in the catalog directory
	Conflict string // path where the incoming version was stored
	Source   string // name of the import source
}

// Result is returned by ImportDir.
type Result struct {
	Conflicts []ConflictPair
	Imported  int      // files copied, conflicts included
	Skipped   int      // identical duplicates skipped
	Invalid   []string // files that are not valid category files

	// Categories counts the categories declared by newly copied files.
	Categories int
}

// ImportDir copies the category files found at the top level of srcDir into
// dstDir. Files already present with different content are stored next to
// the original as <name>.conflict-<source>.yaml and left for the user to
// resolve; the catalog loader ignores them.
func ImportDir(srcDir, dstDir, source string) (*Result, error) {
	result := &Result{}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", srcDir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dstDir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !catalog.IsCategoryFile(e.Name()) {
			continue
		}
		src := filepath.Join(srcDir, e.Name())
		dst := filepath.Join(dstDir, e.Name())

		data, err := os.ReadFile(src)
		if err != nil {
			return result, err
		}
		cats, err := catalog.Parse(e.Name(), data)
		if err != nil || len(cats) == 0 {
			result.Invalid = append(result.Invalid, src)
			continue
		}

		if _, err := os.Stat(dst); err == nil {
			srcMD5, err := fileMD5(src)
			if err != nil {
				return result, fmt.Errorf("md5 %s: %w", src, err)
			}
			dstMD5, err := fileMD5(dst)
			if err != nil {
				return result, fmt.Errorf("md5 %s: %w", dst, err)
			}
			if srcMD5 == dstMD5 {
				result.Skipped++
				continue
			}
			conflictDst := conflictPath(dst, source)
			if err := copyFile(src, conflictDst); err != nil {
				return result, fmt.Errorf("conflict copy %s → %s: %w", src, conflictDst, err)
			}
			result.Conflicts = append(result.Conflicts, ConflictPair{
				Original: dst,
				Conflict: conflictDst,
				Source:   source,
			})
			result.Imported++
			continue
		}

		if err := copyFile(src, dst); err != nil {
			return result, fmt.Errorf("copy %s → %s: %w", src, dst, err)
		}
		result.Imported++
		result.Categories += len(cats)
	}

	return result, nil
}

// FindConflicts lists the conflict files left in dir by earlier imports.
func FindConflicts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.Contains(e.Name(), catalog.ConflictMarker) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}

// conflictPath inserts .conflict-<source> before the final extension.
//
//	tools.yaml → tools.conflict-laptop.yaml
func conflictPath(original, source string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	return base + catalog.ConflictMarker + source + ext
}

// fileMD5 returns the hex-encoded MD5 digest of the file at path.
func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// copyFile copies src to dst, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
