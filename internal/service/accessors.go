package service

import (
	"github.com/driftlab/sponge/internal/domain"
)

// Read accessors return copies so display tooling and audit logging can
// never alias live aggregate state.

func (s *SpongeService) Snapshot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot
}

func (s *SpongeService) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Version
}

func (s *SpongeService) InteractionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.InteractionCount
}

func (s *SpongeService) Tone() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Tone
}

func (s *SpongeService) OpinionVectors() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.state.OpinionVectors))
	for topic, pos := range s.state.OpinionVectors {
		out[topic] = pos
	}
	return out
}

func (s *SpongeService) BeliefMeta() map[string]domain.BeliefMeta {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.BeliefMeta, len(s.state.BeliefMeta))
	for topic, meta := range s.state.BeliefMeta {
		out[topic] = meta
	}
	return out
}

func (s *SpongeService) RecentShifts() []domain.Shift {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Shift(nil), s.state.RecentShifts...)
}

func (s *SpongeService) StagedUpdates() []domain.StagedOpinionUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.StagedOpinionUpdate(nil), s.state.StagedUpdates...)
}

func (s *SpongeService) PendingInsights() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.state.PendingInsights...)
}

func (s *SpongeService) BehavioralSignature() domain.BehavioralSignature {
	s.mu.Lock()
	defer s.mu.Unlock()
	engagement := make(map[string]int, len(s.state.Signature.TopicEngagement))
	for topic, count := range s.state.Signature.TopicEngagement {
		engagement[topic] = count
	}
	return domain.BehavioralSignature{
		TopicEngagement:  engagement,
		DisagreementRate: s.state.Signature.DisagreementRate,
	}
}

// Contradictions reports the unresolved contradiction backlog.
func (s *SpongeService) Contradictions() []domain.ContradictionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CollectUnresolvedContradictions(s.state)
}

// Entrenched reports beliefs flagged by the entrenchment diagnostic.
func (s *SpongeService) Entrenched() []domain.EntrenchedBelief {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DetectEntrenchedBeliefs(s.state)
}
