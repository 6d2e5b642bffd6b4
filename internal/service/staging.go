package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/driftlab/sponge/internal/domain"
	"github.com/google/uuid"
)

const (
	// DefaultCoolingPeriod is how many interactions a staged update
	// waits before committing.
	DefaultCoolingPeriod = 2

	// ContradictionPositionMin is the minimum established |position|
	// for an opposing staged update to count as a contradiction.
	ContradictionPositionMin = 0.35

	// MaxRecentShifts bounds the persisted audit trail.
	MaxRecentShifts = 50
)

// StageUpdate schedules a belief nudge to commit coolingPeriod
// interactions from now. Delaying the commit keeps rapid consecutive
// high-looking signals from compounding instantly and lets
// contradictions surface before they land.
func StageUpdate(s *domain.SpongeState, topic string, direction int, magnitude float64, coolingPeriod int, provenance string) domain.StagedOpinionUpdate {
	if coolingPeriod < 0 {
		coolingPeriod = 0
	}
	u := domain.StagedOpinionUpdate{
		Topic:          topic,
		Magnitude:      float64(direction) * magnitude,
		DueInteraction: s.InteractionCount + coolingPeriod,
		Provenance:     provenance,
	}
	s.StagedUpdates = append(s.StagedUpdates, u)
	return u
}

// ApplyDueStagedUpdates commits every staged update whose due
// interaction has arrived, oldest first, and removes it from the queue.
// Same-topic entries commit independently and sequentially. Returns the
// committed topics in commit order.
func ApplyDueStagedUpdates(s *domain.SpongeState) []string {
	var committed []string
	remaining := s.StagedUpdates[:0]

	for _, u := range s.StagedUpdates {
		if u.DueInteraction > s.InteractionCount {
			remaining = append(remaining, u)
			continue
		}

		UpdateBelief(s, u.Topic, u.Direction(), math.Abs(u.Magnitude))
		committed = append(committed, u.Topic)
		appendShift(s, math.Abs(u.Magnitude),
			fmt.Sprintf("committed staged update on %q (%+.3f, staged by %s)", u.Topic, u.Magnitude, u.Provenance))
	}

	s.StagedUpdates = remaining
	return committed
}

// CollectUnresolvedContradictions reports every not-yet-due staged
// update whose direction opposes an established ledger position,
// strongest opposition first. Read-only.
func CollectUnresolvedContradictions(s *domain.SpongeState) []domain.ContradictionSummary {
	var out []domain.ContradictionSummary

	for _, u := range s.StagedUpdates {
		if u.DueInteraction <= s.InteractionCount {
			continue
		}
		pos := s.OpinionVectors[u.Topic]
		if float64(u.Direction())*pos >= 0 {
			continue
		}
		if math.Abs(pos) < ContradictionPositionMin {
			continue
		}
		out = append(out, domain.ContradictionSummary{
			Topic:           u.Topic,
			Position:        pos,
			StagedMagnitude: u.Magnitude,
			Opposition:      math.Abs(pos),
			DueInteraction:  u.DueInteraction,
			Provenance:      u.Provenance,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Opposition > out[j].Opposition
	})
	return out
}

func appendShift(s *domain.SpongeState, magnitude float64, description string) {
	s.RecentShifts = append(s.RecentShifts, domain.Shift{
		ID:          uuid.New(),
		Interaction: s.InteractionCount,
		Magnitude:   magnitude,
		Description: description,
	})
	if len(s.RecentShifts) > MaxRecentShifts {
		s.RecentShifts = s.RecentShifts[len(s.RecentShifts)-MaxRecentShifts:]
	}
}
