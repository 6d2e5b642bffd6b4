package service

import (
	"fmt"
	"math"

	"github.com/driftlab/sponge/internal/domain"
)

const (
	// ContractionPositionMin is the minimum |position| of an existing
	// belief before contraction applies.
	ContractionPositionMin = 0.45

	// ContractionConfidenceMin is the minimum confidence of the
	// contradicted belief.
	ContractionConfidenceMin = 0.55

	// ContractionScoreMin is the minimum evidence score required to
	// justify retracting prior commitment.
	ContractionScoreMin = 0.65

	// ContractionStep is the fraction of |position| retracted per
	// contraction.
	ContractionStep = 0.35

	// contractionStepFloor keeps contraction from stalling near zero.
	contractionStepFloor = 0.02
)

// ShouldContract reports whether strong contradicting evidence should
// first shrink an entrenched opposing belief. All conditions must hold:
// the existing position opposes the new direction, both position and
// confidence are high, and the evidence is strong, internally
// consistent, and from trusted reasoning and source tiers.
func ShouldContract(s *domain.SpongeState, topic string, newDirection int, ev *domain.EvidenceAssessment) bool {
	if ev == nil || newDirection == 0 {
		return false
	}
	pos, ok := s.OpinionVectors[topic]
	if !ok || pos*float64(newDirection) >= 0 {
		return false
	}
	if math.Abs(pos) < ContractionPositionMin {
		return false
	}
	if s.BeliefMeta[topic].Confidence < ContractionConfidenceMin {
		return false
	}
	return ev.Score >= ContractionScoreMin && ev.Trusted()
}

// ApplyContraction moves the position for topic toward zero by a
// proportional step (never past zero) and discounts its confidence.
// Retracting over-commitment first avoids a discontinuous sign flip
// when the contrary evidence later commits. Never touches Version.
// Returns the retraction step.
func ApplyContraction(s *domain.SpongeState, topic string) float64 {
	pos := s.OpinionVectors[topic]
	if pos == 0 {
		return 0
	}

	step := math.Abs(pos) * ContractionStep
	if step < contractionStepFloor {
		step = contractionStepFloor
	}
	if step > math.Abs(pos) {
		step = math.Abs(pos)
	}

	if pos > 0 {
		s.OpinionVectors[topic] = pos - step
	} else {
		s.OpinionVectors[topic] = pos + step
	}

	meta := s.BeliefMeta[topic]
	meta.Confidence = clampConfidence(meta.Confidence * (1 - ContractionStep/2))
	s.BeliefMeta[topic] = meta

	appendShift(s, step, fmt.Sprintf("contracted %q toward zero by %.3f under opposing evidence", topic, step))
	return step
}
