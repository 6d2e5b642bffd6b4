package service

import (
	"fmt"
	"math"
	"testing"

	"github.com/driftlab/sponge/internal/domain"
)

func TestStagedUpdateCommitsExactlyOnce(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 5

	StageUpdate(s, "nuclear", 1, 0.1, 3, "test")
	if got := s.StagedUpdates[0].DueInteraction; got != 8 {
		t.Fatalf("due interaction = %d, want 8", got)
	}

	commits := 0
	for count := 6; count <= 10; count++ {
		s.InteractionCount = count
		committed := ApplyDueStagedUpdates(s)

		switch {
		case count < 8 && len(committed) != 0:
			t.Fatalf("interaction %d: committed early: %v", count, committed)
		case count == 8:
			if len(committed) != 1 || committed[0] != "nuclear" {
				t.Fatalf("interaction 8: committed = %v, want [nuclear]", committed)
			}
		case count > 8 && len(committed) != 0:
			t.Fatalf("interaction %d: committed again: %v", count, committed)
		}
		commits += len(committed)
	}

	if commits != 1 {
		t.Fatalf("total commits = %d, want exactly 1", commits)
	}
	if len(s.StagedUpdates) != 0 {
		t.Errorf("queue not drained: %v", s.StagedUpdates)
	}
}

func TestZeroCoolingCommitsOnSameInteraction(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 1

	StageUpdate(s, "nuclear", 1, 0.1, 0, "test")
	committed := ApplyDueStagedUpdates(s)

	if len(committed) != 1 || committed[0] != "nuclear" {
		t.Fatalf("committed = %v, want [nuclear]", committed)
	}
	if got := s.OpinionVectors["nuclear"]; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("position = %f, want 0.1", got)
	}
	if got := s.BeliefMeta["nuclear"].EvidenceCount; got != 1 {
		t.Errorf("evidence count = %d, want 1", got)
	}
}

func TestZeroCoolingCommitsFromSeedState(t *testing.T) {
	s := domain.NewSpongeState()

	// Fresh seed: due_interaction == interaction_count == 0.
	u := StageUpdate(s, "nuclear", 1, 0.1, 0, "test")
	if u.DueInteraction != 0 {
		t.Fatalf("due interaction = %d, want 0", u.DueInteraction)
	}

	committed := ApplyDueStagedUpdates(s)
	if len(committed) != 1 || committed[0] != "nuclear" {
		t.Fatalf("committed = %v, want [nuclear]", committed)
	}
	if got := s.OpinionVectors["nuclear"]; math.Abs(got-0.1) > 1e-9 {
		t.Errorf("position = %f, want 0.1", got)
	}
	if got := s.BeliefMeta["nuclear"].EvidenceCount; got != 1 {
		t.Errorf("evidence count = %d, want 1", got)
	}
	if s.Version != 0 {
		t.Errorf("version = %d, want 0", s.Version)
	}
}

func TestSameTopicEntriesCommitIndependently(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 1

	StageUpdate(s, "solar", 1, 0.1, 0, "first")
	StageUpdate(s, "solar", 1, 0.05, 0, "second")

	committed := ApplyDueStagedUpdates(s)
	if len(committed) != 2 {
		t.Fatalf("committed = %v, want two entries", committed)
	}
	if got := s.OpinionVectors["solar"]; math.Abs(got-0.15) > 1e-9 {
		t.Errorf("position = %f, want 0.15", got)
	}
	if got := s.BeliefMeta["solar"].EvidenceCount; got != 2 {
		t.Errorf("evidence count = %d, want 2", got)
	}
}

func TestNegativeCoolingClampsToZero(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 4

	u := StageUpdate(s, "wind", -1, 0.2, -5, "test")
	if u.DueInteraction != 4 {
		t.Errorf("due interaction = %d, want 4", u.DueInteraction)
	}
	if u.Direction() != -1 {
		t.Errorf("direction = %d, want -1", u.Direction())
	}
}

func TestCollectUnresolvedContradictions(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 10
	s.OpinionVectors["nuclear"] = 0.6
	s.OpinionVectors["solar"] = -0.5
	s.OpinionVectors["wind"] = 0.1

	// Opposing and pending: reported.
	StageUpdate(s, "nuclear", -1, 0.05, 3, "a")
	StageUpdate(s, "solar", 1, 0.05, 3, "b")
	// Same direction: not a contradiction.
	StageUpdate(s, "nuclear", 1, 0.05, 3, "c")
	// Weak established position: below the reporting threshold.
	StageUpdate(s, "wind", -1, 0.05, 3, "d")
	// Already due: about to resolve itself, not reported.
	s.StagedUpdates = append(s.StagedUpdates, domain.StagedOpinionUpdate{
		Topic: "nuclear", Magnitude: -0.05, DueInteraction: 10,
	})

	out := CollectUnresolvedContradictions(s)
	if len(out) != 2 {
		t.Fatalf("contradictions = %d, want 2: %+v", len(out), out)
	}
	if out[0].Topic != "nuclear" || out[1].Topic != "solar" {
		t.Errorf("order = [%s, %s], want strongest opposition first", out[0].Topic, out[1].Topic)
	}
	if out[0].Opposition < out[1].Opposition {
		t.Errorf("not sorted by opposition: %f < %f", out[0].Opposition, out[1].Opposition)
	}
}

func TestShiftTrailBounded(t *testing.T) {
	s := domain.NewSpongeState()

	for i := 0; i < MaxRecentShifts+25; i++ {
		s.InteractionCount = i + 1
		appendShift(s, 0.01, fmt.Sprintf("shift %d", i))
	}

	if len(s.RecentShifts) != MaxRecentShifts {
		t.Fatalf("trail length = %d, want %d", len(s.RecentShifts), MaxRecentShifts)
	}
	// Oldest entries fall off; the newest survives.
	last := s.RecentShifts[len(s.RecentShifts)-1]
	if last.Description != fmt.Sprintf("shift %d", MaxRecentShifts+24) {
		t.Errorf("newest shift = %q", last.Description)
	}
	if last.ID == (domain.Shift{}).ID {
		t.Error("shift ID not assigned")
	}
}
