package service

import (
	"math"
	"testing"

	"github.com/driftlab/sponge/internal/domain"
)

func TestUpdateBeliefClampsUnderArbitrarySequences(t *testing.T) {
	s := domain.NewSpongeState()

	sequence := []struct {
		direction int
		magnitude float64
	}{
		{1, 0.9}, {1, 0.9}, {1, 5.0}, {-1, 0.3}, {-1, 10.0}, {-1, 0.7}, {1, 2.5},
	}

	for i, step := range sequence {
		s.InteractionCount = i + 1
		UpdateBelief(s, "climate", step.direction, step.magnitude)

		pos := s.OpinionVectors["climate"]
		if pos < MinPosition || pos > MaxPosition {
			t.Fatalf("step %d: position %f out of [%f, %f]", i, pos, MinPosition, MaxPosition)
		}
		conf := s.BeliefMeta["climate"].Confidence
		if conf < MinConfidence || conf > MaxConfidence {
			t.Fatalf("step %d: confidence %f out of [%f, %f]", i, conf, MinConfidence, MaxConfidence)
		}
	}
}

func TestUpdateBeliefNoOps(t *testing.T) {
	tests := []struct {
		name      string
		direction int
		magnitude float64
	}{
		{"zero direction", 0, 0.5},
		{"zero magnitude", 1, 0},
		{"negative magnitude", -1, -0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.NewSpongeState()
			s.InteractionCount = 3

			UpdateBelief(s, "climate", tt.direction, tt.magnitude)

			if len(s.OpinionVectors) != 0 {
				t.Errorf("opinion vectors mutated: %v", s.OpinionVectors)
			}
			if len(s.BeliefMeta) != 0 {
				t.Errorf("belief meta mutated: %v", s.BeliefMeta)
			}
		})
	}
}

func TestUpdateBeliefConfidenceGrowthDiminishes(t *testing.T) {
	s := domain.NewSpongeState()

	var prev, prevGain float64
	for i := 1; i <= 8; i++ {
		s.InteractionCount = i
		UpdateBelief(s, "solar", 1, 0.01)

		conf := s.BeliefMeta["solar"].Confidence
		gain := conf - prev
		if gain <= 0 {
			t.Fatalf("update %d: confidence did not grow (%f -> %f)", i, prev, conf)
		}
		if i > 1 && gain >= prevGain {
			t.Fatalf("update %d: gain %f not diminishing (previous %f)", i, gain, prevGain)
		}
		prev, prevGain = conf, gain
	}

	meta := s.BeliefMeta["solar"]
	if meta.EvidenceCount != 8 {
		t.Errorf("evidence count = %d, want 8", meta.EvidenceCount)
	}
	if meta.LastReinforced != 8 {
		t.Errorf("last reinforced = %d, want 8", meta.LastReinforced)
	}
	if math.Abs(s.OpinionVectors["solar"]-0.08) > 1e-9 {
		t.Errorf("position = %f, want 0.08", s.OpinionVectors["solar"])
	}
}
