package service

import (
	"math"
	"sort"

	"github.com/driftlab/sponge/internal/domain"
)

const (
	// DefaultDecayRate is the power-law exponent applied to elapsed
	// interactions since last reinforcement.
	DefaultDecayRate = 0.15

	// DecaySignalFloor drops a belief entirely once both its position
	// and confidence fall below it.
	DecaySignalFloor = 0.05

	// EntrenchedConfidenceMin and EntrenchedWindow flag beliefs whose
	// confidence has sat very high without reinforcement.
	EntrenchedConfidenceMin = 0.9
	EntrenchedWindow        = 20
)

// DecayBeliefs shrinks every tracked belief by a power law of elapsed
// interactions since its last reinforcement, removing beliefs whose
// remaining signal falls below the floor. Runs only inside reflection
// cycles. Returns the dropped topics, sorted. Never increases any
// |position| or confidence, and never touches Version.
func DecayBeliefs(s *domain.SpongeState, decayRate float64) []string {
	if decayRate < 0 {
		decayRate = 0
	}

	var dropped []string
	for topic, pos := range s.OpinionVectors {
		meta := s.BeliefMeta[topic]
		elapsed := s.InteractionCount - meta.LastReinforced
		if elapsed <= 0 {
			continue
		}

		factor := 1 / math.Pow(1+float64(elapsed), decayRate)
		newPos := pos * factor
		meta.Confidence = clampConfidence(meta.Confidence * factor)

		if math.Abs(newPos) < DecaySignalFloor && meta.Confidence < DecaySignalFloor {
			delete(s.OpinionVectors, topic)
			delete(s.BeliefMeta, topic)
			dropped = append(dropped, topic)
			continue
		}

		s.OpinionVectors[topic] = newPos
		s.BeliefMeta[topic] = meta
	}

	sort.Strings(dropped)
	return dropped
}

// DetectEntrenchedBeliefs flags topics holding very high confidence
// without reinforcement over a long window. Diagnostic only; the sponge
// never auto-corrects entrenchment.
func DetectEntrenchedBeliefs(s *domain.SpongeState) []domain.EntrenchedBelief {
	var out []domain.EntrenchedBelief
	for topic, meta := range s.BeliefMeta {
		stable := s.InteractionCount - meta.LastReinforced
		if meta.Confidence >= EntrenchedConfidenceMin && stable >= EntrenchedWindow {
			out = append(out, domain.EntrenchedBelief{
				Topic:              topic,
				Position:           s.OpinionVectors[topic],
				Confidence:         meta.Confidence,
				InteractionsStable: stable,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}
