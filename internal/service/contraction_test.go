package service

import (
	"math"
	"testing"

	"github.com/driftlab/sponge/internal/domain"
)

func strongOpposing() *domain.EvidenceAssessment {
	return assessment(0.85, 0.5, domain.ReasoningEmpiricalData, domain.SourcePeerReviewed, true)
}

func TestShouldContract(t *testing.T) {
	tests := []struct {
		name       string
		position   float64
		confidence float64
		direction  int
		mutate     func(*domain.EvidenceAssessment)
		want       bool
	}{
		{"all conditions met", 0.6, 0.6, -1, nil, true},
		{"negative position, positive evidence", -0.6, 0.6, 1, nil, true},
		{"same direction", 0.6, 0.6, 1, nil, false},
		{"neutral direction", 0.6, 0.6, 0, nil, false},
		{"position too weak", 0.3, 0.6, -1, nil, false},
		{"confidence too low", 0.6, 0.4, -1, nil, false},
		{"score too low", 0.6, 0.6, -1, func(ev *domain.EvidenceAssessment) { ev.Score = 0.5 }, false},
		{"untrusted reasoning", 0.6, 0.6, -1, func(ev *domain.EvidenceAssessment) { ev.Reasoning = domain.ReasoningAnecdote }, false},
		{"untrusted source", 0.6, 0.6, -1, func(ev *domain.EvidenceAssessment) { ev.Source = domain.SourceUnknown }, false},
		{"internally inconsistent", 0.6, 0.6, -1, func(ev *domain.EvidenceAssessment) { ev.InternallyConsistent = false }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.NewSpongeState()
			s.OpinionVectors["nuclear"] = tt.position
			s.BeliefMeta["nuclear"] = domain.BeliefMeta{Confidence: tt.confidence}

			ev := strongOpposing()
			if tt.mutate != nil {
				tt.mutate(ev)
			}

			if got := ShouldContract(s, "nuclear", tt.direction, ev); got != tt.want {
				t.Errorf("ShouldContract = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldContractUnknownTopic(t *testing.T) {
	s := domain.NewSpongeState()
	if ShouldContract(s, "nuclear", -1, strongOpposing()) {
		t.Error("contraction fired for a topic with no position")
	}
}

func TestApplyContractionStepsTowardZero(t *testing.T) {
	s := domain.NewSpongeState()
	s.OpinionVectors["nuclear"] = 0.6
	s.BeliefMeta["nuclear"] = domain.BeliefMeta{Confidence: 0.6}

	step := ApplyContraction(s, "nuclear")

	if !floatsClose(step, 0.6*ContractionStep) {
		t.Errorf("step = %f, want %f", step, 0.6*ContractionStep)
	}
	got := s.OpinionVectors["nuclear"]
	if !floatsClose(got, 0.6-step) {
		t.Errorf("position = %f, want %f", got, 0.6-step)
	}
	if got <= 0 {
		t.Errorf("contraction overshot zero: %f", got)
	}
	if conf := s.BeliefMeta["nuclear"].Confidence; conf >= 0.6 {
		t.Errorf("confidence %f not discounted", conf)
	}
	if len(s.RecentShifts) != 1 {
		t.Errorf("shift trail entries = %d, want 1", len(s.RecentShifts))
	}
}

func TestApplyContractionNeverCrossesZero(t *testing.T) {
	for _, pos := range []float64{0.01, -0.01, 0.015, -0.6} {
		s := domain.NewSpongeState()
		s.OpinionVectors["t"] = pos
		s.BeliefMeta["t"] = domain.BeliefMeta{Confidence: 0.9}

		ApplyContraction(s, "t")

		got := s.OpinionVectors["t"]
		if pos > 0 && got < 0 || pos < 0 && got > 0 {
			t.Errorf("position %f crossed zero to %f", pos, got)
		}
		if math.Abs(got) >= math.Abs(pos) {
			t.Errorf("position %f did not shrink: %f", pos, got)
		}
	}
}

func TestApplyContractionZeroPositionNoOp(t *testing.T) {
	s := domain.NewSpongeState()
	s.OpinionVectors["t"] = 0

	if step := ApplyContraction(s, "t"); step != 0 {
		t.Errorf("step = %f, want 0", step)
	}
	if len(s.RecentShifts) != 0 {
		t.Error("no-op contraction recorded a shift")
	}
}
