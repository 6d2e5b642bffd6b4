package service

import (
	"context"
	"strings"

	"github.com/driftlab/sponge/internal/domain"
	"go.uber.org/zap"
)

const (
	// DefaultReflectionInterval triggers a reflection cycle every N
	// interactions.
	DefaultReflectionInterval = 12

	// DefaultShiftPressure triggers an early reflection once the
	// cumulative shift magnitude since the last cycle exceeds it.
	DefaultShiftPressure = 1.0

	// DefaultMaxSnapshotLen bounds an acceptable replacement snapshot.
	DefaultMaxSnapshotLen = 2000
)

// shouldReflect gates on the last cycle, not the last accepted
// snapshot: a producer that keeps rejecting (or is absent) must not
// re-trigger decay on every interaction.
func (s *SpongeService) shouldReflect() bool {
	st := s.state
	if st.InteractionCount-st.LastCycleAt >= s.ReflectionInterval {
		return true
	}
	return s.pendingShiftPressure() > s.ShiftPressure
}

func (s *SpongeService) pendingShiftPressure() float64 {
	total := 0.0
	for _, shift := range s.state.RecentShifts {
		if shift.Interaction > s.state.LastCycleAt {
			total += shift.Magnitude
		}
	}
	return total
}

// Reflect forces a reflection cycle outside the usual triggers and
// persists the result.
func (s *SpongeService) Reflect(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accepted := s.reflectLocked(ctx)
	if err := s.store.Save(s.state); err != nil {
		return accepted, err
	}
	return accepted, nil
}

// reflectLocked runs one reflection cycle: decay the ledger, gather
// diagnostics, ask the producer for a replacement snapshot, and accept
// it only if well-formed. The cycle counts as run either way; only
// acceptance clears pending insights, advances last_reflection_at, and
// bumps the version by exactly one. Decay alone never changes the
// version.
func (s *SpongeService) reflectLocked(ctx context.Context) bool {
	st := s.state
	st.LastCycleAt = st.InteractionCount

	dropped := DecayBeliefs(st, s.DecayRate)
	if len(dropped) > 0 {
		s.logger.Info("decay dropped beliefs", zap.Strings("topics", dropped))
	}

	if s.llm == nil {
		return false
	}

	diag := domain.ReflectionDiagnostics{
		DroppedTopics:   dropped,
		Entrenched:      DetectEntrenchedBeliefs(st),
		Contradictions:  CollectUnresolvedContradictions(st),
		RecentShifts:    append([]domain.Shift(nil), st.RecentShifts...),
		PendingInsights: append([]string(nil), st.PendingInsights...),
	}

	text, err := s.llm.GenerateReflection(ctx, st.Snapshot, diag)
	if err != nil {
		s.logger.Warn("reflection generation failed", zap.Error(err))
		return false
	}

	if !s.validSnapshot(text, st.Snapshot) {
		s.logger.Warn("reflection rejected as degenerate", zap.Int("len", len(text)))
		return false
	}

	st.Snapshot = strings.TrimSpace(text)
	st.PendingInsights = nil
	st.LastReflectionAt = st.InteractionCount
	st.Version++
	appendShift(st, 0, "accepted reflection, narrative snapshot replaced")

	s.logger.Info("reflection accepted",
		zap.Int("version", st.Version),
		zap.Int("interaction", st.InteractionCount))
	return true
}

func (s *SpongeService) validSnapshot(text, previous string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || trimmed == previous {
		return false
	}
	return len(trimmed) <= s.MaxSnapshotLen
}
