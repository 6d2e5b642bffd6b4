package service

import (
	"github.com/driftlab/sponge/internal/domain"
)

const (
	// MaxNudge caps the raw magnitude of a single belief update before
	// the caller's confidence division.
	MaxNudge = 0.25

	// BootstrapWindow is the number of initial interactions during which
	// magnitudes are dampened to avoid over-committing to early signal.
	BootstrapWindow = 10

	// BootstrapDamping scales magnitudes inside the bootstrap window.
	BootstrapDamping = 0.5

	// scoreFloor and noveltyFloor keep score/novelty contributions
	// strictly positive so tier ordering survives low scores.
	scoreFloor   = 0.2
	noveltyFloor = 0.3

	inconsistencyPenalty = 0.6
)

func reasoningWeight(r domain.ReasoningTier) float64 {
	switch r {
	case domain.ReasoningLogicalArgument, domain.ReasoningEmpiricalData:
		return 1.0
	case domain.ReasoningExpertOpinion:
		return 0.9
	case domain.ReasoningAnecdote:
		return 0.35
	case domain.ReasoningSocialPressure, domain.ReasoningUnverifiedClaim:
		return 0.3
	}
	return 0.3
}

func sourceWeight(s domain.SourceTier) float64 {
	switch s {
	case domain.SourcePeerReviewed:
		return 1.0
	case domain.SourceEstablishedExpert:
		return 0.95
	case domain.SourceInformedOpinion:
		return 0.85
	case domain.SourceCasualObservation:
		return 0.4
	case domain.SourceUnknown:
		return 0.35
	}
	return 0.35
}

// Magnitude converts evidence quality into an update size. It is a pure
// function of the assessment and the agent's interaction count: higher
// score and higher novelty raise it, untrusted tiers discount it, and
// the bootstrap window dampens it. Resistance proportional to existing
// confidence is applied by the caller, not here.
func Magnitude(ev *domain.EvidenceAssessment, interactionCount int) float64 {
	if ev == nil {
		return 0
	}

	scorePart := scoreFloor + (1-scoreFloor)*clampUnit(ev.Score)
	noveltyPart := noveltyFloor + (1-noveltyFloor)*clampUnit(ev.Novelty)

	mag := MaxNudge * scorePart * noveltyPart * reasoningWeight(ev.Reasoning) * sourceWeight(ev.Source)
	if !ev.InternallyConsistent {
		mag *= inconsistencyPenalty
	}

	if interactionCount < BootstrapWindow {
		mag *= BootstrapDamping
	}

	return mag
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
