// Package fsutil implements the filesystem probe primitives the detection
// engine consumes: existence checks, glob expansion, directory listing and
// file counting. The engine never touches the filesystem directly.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Exists reports whether pattern resolves under baseDir. A pattern without
// glob metacharacters is a plain stat; otherwise it is matched with
// doublestar against the immediate directory entries and any deeper paths
// the pattern names.
func Exists(pattern, baseDir string) bool {
	if !strings.ContainsAny(pattern, "*?[{") {
		_, err := os.Stat(filepath.Join(baseDir, pattern))
		return err == nil
	}
	matches, err := doublestar.Glob(os.DirFS(baseDir), pattern)
	if err != nil {
		return false
	}
	return len(matches) > 0
}

// ExpandGlob resolves pattern under baseDir and returns the matching
// directories as slash-separated relative paths, sorted. Non-directory
// matches are dropped. Errors degrade to an empty result.
func ExpandGlob(baseDir, pattern string) []string {
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	// "packages/**" means every package directory below; for project
	// discovery only the immediate children matter.
	if strings.HasSuffix(pattern, "/**") {
		pattern = strings.TrimSuffix(pattern, "/**") + "/*"
	}
	var dirs []string
	if !strings.ContainsAny(pattern, "*?[{") {
		info, err := os.Stat(filepath.Join(baseDir, pattern))
		if err == nil && info.IsDir() {
			dirs = append(dirs, pattern)
		}
		return dirs
	}
	matches, err := doublestar.Glob(os.DirFS(baseDir), pattern)
	if err != nil {
		return nil
	}
	for _, m := range matches {
		info, err := os.Stat(filepath.Join(baseDir, m))
		if err != nil || !info.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.ToSlash(m))
	}
	sort.Strings(dirs)
	return dirs
}

// GlobFiles resolves pattern under baseDir and returns matching regular
// files as slash-separated relative paths, sorted. Errors degrade to an
// empty result.
func GlobFiles(baseDir, pattern string) []string {
	matches, err := doublestar.Glob(os.DirFS(baseDir), pattern)
	if err != nil {
		return nil
	}
	var files []string
	for _, m := range matches {
		info, err := os.Stat(filepath.Join(baseDir, m))
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, filepath.ToSlash(m))
	}
	sort.Strings(files)
	return files
}

// ListDirectories returns the names of the immediate subdirectories of
// baseDir in listing order.
func ListDirectories(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", baseDir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// MatchesIgnore reports whether the slash-separated relative path matches
// any of the ignore globs. A glob of the form "dir/**" also covers the
// directory itself, so directory-pruning callers can match plain names.
func MatchesIgnore(path string, ignoreGlobs []string) bool {
	normalized := filepath.ToSlash(path)
	for _, g := range ignoreGlobs {
		if g == "" {
			continue
		}
		if ok, err := doublestar.Match(g, normalized); err == nil && ok {
			return true
		}
		if base, found := strings.CutSuffix(g, "/**"); found {
			if ok, err := doublestar.Match(base, normalized); err == nil && ok {
				return true
			}
		}
	}
	return false
}

// CountFiles counts the regular files under dir, skipping hidden
// directories, the named ignore directories and any path matching the
// ignore globs. Walk errors are tolerated; the count is best-effort.
func CountFiles(dir string, ignoreDirs map[string]bool, ignoreGlobs []string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return filepath.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}
		name := d.Name()
		rel, relErr := filepath.Rel(dir, path)
		if d.IsDir() {
			if ignoreDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if relErr == nil && MatchesIgnore(rel, ignoreGlobs) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if relErr == nil && MatchesIgnore(rel, ignoreGlobs) {
			return nil
		}
		count++
		return nil
	})
	return count
}
