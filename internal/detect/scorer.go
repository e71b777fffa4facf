package detect

import (
	"math"
	"path/filepath"

	"github.com/koksalmehmet/atlas/internal/indicator"
	"github.com/koksalmehmet/atlas/internal/logger"
)

// normalizationWeight calibrates confidence so that one strong indicator
// (a framework config, weight 15) already saturates the score and a bare
// ecosystem manifest (weight 10) lands at 66. Without the floor near-empty
// projects would score close to zero.
const normalizationWeight = 15

// Scorer evaluates the project indicator table against a single directory.
type Scorer struct {
	probe       Probe
	reg         *indicator.Registry
	ignoreGlobs []string
}

// NewScorer builds a scorer over the given probe and registry.
func NewScorer(probe Probe, reg *indicator.Registry) *Scorer {
	return &Scorer{probe: probe, reg: reg}
}

// Score classifies dir, returning nil when no indicator matches. rel is
// the root-relative path recorded on the candidate ("." for the root).
// Individual probe failures count as non-matches; scoring a directory
// never fails as a whole.
func (s *Scorer) Score(dir, rel string) *Candidate {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		absDir = dir
	}

	totalWeight := 0
	var matched []string
	// The winning indicator is resolved after all probes complete, in
	// registry order, so the outcome does not depend on probe timing.
	bestWeight := 0
	var bestType indicator.ProjectType

	for _, ind := range s.reg.Projects() {
		if !s.probe.Exists(ind.Pattern, absDir) {
			continue
		}
		totalWeight += ind.Weight
		matched = append(matched, ind.Pattern)
		if ind.Weight > bestWeight {
			bestWeight = ind.Weight
			bestType = ind.Type
		}
	}

	if totalWeight == 0 {
		return nil
	}

	confidence := math.Min(100, float64(totalWeight)/normalizationWeight*100)
	confidence = math.Round(confidence*10) / 10

	name := s.projectName(absDir, bestType)
	if name == "" {
		name = filepath.Base(absDir)
	}

	logger.Debug("scored %s: type=%s weight=%d confidence=%.1f", rel, bestType, totalWeight, confidence)

	return &Candidate{
		Path:              rel,
		AbsolutePath:      absDir,
		Name:              name,
		PrimaryType:       bestType,
		Confidence:        confidence,
		MatchedIndicators: matched,
		FileCount:         s.probe.CountFiles(absDir, DefaultIgnoreDirs, s.ignoreGlobs),
	}
}
