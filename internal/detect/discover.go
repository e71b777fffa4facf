package detect

import (
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/koksalmehmet/atlas/internal/fsutil"
	"github.com/koksalmehmet/atlas/internal/logger"
)

// maxScoreWorkers bounds the fan-out of per-directory scoring.
const maxScoreWorkers = 8

// Discover scores the root and its immediate subdirectories and returns
// the candidates in discovery order: root first, then subdirectories in
// listing order. Descent stops at depth 1; nested projects surface
// through workspace conventions instead.
func (d *Detector) Discover(root string) []Candidate {
	var ordered []*Candidate

	rootCand := d.scorer.Score(root, ".")
	ordered = append(ordered, rootCand)

	names, err := d.probe.ListDirectories(root)
	if err != nil {
		logger.Warn("list %s: %v", root, err)
		names = nil
	}
	var subdirs []string
	for _, name := range names {
		if strings.HasPrefix(name, ".") || DefaultIgnoreDirs[name] {
			continue
		}
		if fsutil.MatchesIgnore(name, d.ignoreGlobs) {
			continue
		}
		subdirs = append(subdirs, name)
	}

	// Subdirectory scoring has no cross-directory dependency; run it with
	// bounded fan-out. Results land in a slot per directory so listing
	// order survives the parallelism.
	slots := make([]*Candidate, len(subdirs))
	workers := runtime.NumCPU()
	if workers > maxScoreWorkers {
		workers = maxScoreWorkers
	}
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				name := subdirs[i]
				slots[i] = d.scorer.Score(filepath.Join(root, name), name)
			}
		}()
	}
	for i := range subdirs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	ordered = append(ordered, slots...)

	var out []Candidate
	for _, c := range ordered {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// mergeCandidates deduplicates scan-discovered and convention-declared
// candidates by normalized absolute path. On collision the declared
// candidate wins (it carries authoritative naming and path metadata) but
// absorbs the scanned candidate's matched indicators. Declared-only
// candidates append after the scanned ones, in-root entries before
// externals regardless of descriptor order.
func mergeCandidates(scanned, declared []Candidate) []Candidate {
	declaredByPath := make(map[string]*Candidate, len(declared))
	taken := make(map[string]bool, len(declared))
	for i := range declared {
		declaredByPath[normalizePath(declared[i].AbsolutePath)] = &declared[i]
	}

	var out []Candidate
	for _, c := range scanned {
		key := normalizePath(c.AbsolutePath)
		if winner, ok := declaredByPath[key]; ok {
			merged := *winner
			merged.MatchedIndicators = unionIndicators(winner.MatchedIndicators, c.MatchedIndicators)
			out = append(out, merged)
			taken[key] = true
			continue
		}
		out = append(out, c)
	}
	for _, external := range []bool{false, true} {
		for _, c := range declared {
			if c.IsExternal != external {
				continue
			}
			key := normalizePath(c.AbsolutePath)
			if taken[key] {
				continue
			}
			// Two declared entries can still alias the same directory (a
			// glob plus an explicit folder); keep the first.
			taken[key] = true
			out = append(out, c)
		}
	}
	return out
}

// sortByConfidence orders candidates by confidence descending. The sort
// is stable, so equal scores keep discovery order.
func sortByConfidence(cands []Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Confidence > cands[j].Confidence
	})
}

func normalizePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return filepath.ToSlash(filepath.Clean(abs))
}

func unionIndicators(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
