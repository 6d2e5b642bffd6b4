package service

import (
	"github.com/driftlab/sponge/internal/domain"
)

const (
	// ConfidenceGrowth is the fraction of remaining headroom gained per
	// reinforcing update. Growth shrinks as confidence approaches 1.
	ConfidenceGrowth = 0.15

	MaxPosition   = 1.0
	MinPosition   = -1.0
	MaxConfidence = 1.0
	MinConfidence = 0.0
)

func clampPosition(p float64) float64 {
	if p > MaxPosition {
		return MaxPosition
	}
	if p < MinPosition {
		return MinPosition
	}
	return p
}

func clampConfidence(c float64) float64 {
	if c > MaxConfidence {
		return MaxConfidence
	}
	if c < MinConfidence {
		return MinConfidence
	}
	return c
}

// UpdateBelief nudges the position for topic by direction*magnitude and
// reinforces its meta. direction 0 or magnitude 0 is a no-op. Positions
// and confidences clamp to their domains regardless of the caller's
// magnitude, so a buggy upstream cannot break the ledger's invariants.
func UpdateBelief(s *domain.SpongeState, topic string, direction int, magnitude float64) {
	if direction == 0 || magnitude <= 0 {
		return
	}

	old := s.OpinionVectors[topic]
	s.OpinionVectors[topic] = clampPosition(old + float64(direction)*magnitude)

	meta := s.BeliefMeta[topic]
	meta.Confidence = clampConfidence(meta.Confidence + ConfidenceGrowth*(1-meta.Confidence))
	meta.EvidenceCount++
	meta.LastReinforced = s.InteractionCount
	s.BeliefMeta[topic] = meta
}
