package service

import (
	"math"
	"testing"

	"github.com/driftlab/sponge/internal/domain"
)

func TestDecayNeverStrengthensBeliefs(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 30
	s.OpinionVectors["nuclear"] = 0.7
	s.BeliefMeta["nuclear"] = domain.BeliefMeta{Confidence: 0.8, LastReinforced: 10}
	s.OpinionVectors["solar"] = -0.4
	s.BeliefMeta["solar"] = domain.BeliefMeta{Confidence: 0.5, LastReinforced: 25}

	DecayBeliefs(s, DefaultDecayRate)

	if got := s.OpinionVectors["nuclear"]; math.Abs(got) >= 0.7 || got < 0 {
		t.Errorf("nuclear position = %f, want weakened positive", got)
	}
	if got := s.OpinionVectors["solar"]; math.Abs(got) >= 0.4 || got > 0 {
		t.Errorf("solar position = %f, want weakened negative", got)
	}
	if got := s.BeliefMeta["nuclear"].Confidence; got >= 0.8 {
		t.Errorf("nuclear confidence = %f, want weakened", got)
	}
}

func TestDecayStalenessScalesWithElapsed(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 50
	s.OpinionVectors["fresh"] = 0.5
	s.BeliefMeta["fresh"] = domain.BeliefMeta{Confidence: 0.5, LastReinforced: 48}
	s.OpinionVectors["stale"] = 0.5
	s.BeliefMeta["stale"] = domain.BeliefMeta{Confidence: 0.5, LastReinforced: 5}

	DecayBeliefs(s, DefaultDecayRate)

	if s.OpinionVectors["stale"] >= s.OpinionVectors["fresh"] {
		t.Errorf("stale %f decayed less than fresh %f", s.OpinionVectors["stale"], s.OpinionVectors["fresh"])
	}
}

func TestDecayJustReinforcedUntouched(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 20
	s.OpinionVectors["solar"] = 0.5
	s.BeliefMeta["solar"] = domain.BeliefMeta{Confidence: 0.7, LastReinforced: 20}

	DecayBeliefs(s, DefaultDecayRate)

	if got := s.OpinionVectors["solar"]; got != 0.5 {
		t.Errorf("position = %f, want 0.5 untouched", got)
	}
	if got := s.BeliefMeta["solar"].Confidence; got != 0.7 {
		t.Errorf("confidence = %f, want 0.7 untouched", got)
	}
}

func TestDecayDropsFadedBeliefsEntirely(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 1000
	s.OpinionVectors["zeta"] = 0.01
	s.BeliefMeta["zeta"] = domain.BeliefMeta{Confidence: 0.01, LastReinforced: 1}
	s.OpinionVectors["alpha"] = 0.02
	s.BeliefMeta["alpha"] = domain.BeliefMeta{Confidence: 0.02, LastReinforced: 1}
	s.OpinionVectors["keep"] = 0.9
	s.BeliefMeta["keep"] = domain.BeliefMeta{Confidence: 0.9, LastReinforced: 990}

	dropped := DecayBeliefs(s, DefaultDecayRate)

	if len(dropped) != 2 || dropped[0] != "alpha" || dropped[1] != "zeta" {
		t.Fatalf("dropped = %v, want [alpha zeta] sorted", dropped)
	}
	for _, topic := range dropped {
		if _, ok := s.OpinionVectors[topic]; ok {
			t.Errorf("%s still in opinion vectors", topic)
		}
		if _, ok := s.BeliefMeta[topic]; ok {
			t.Errorf("%s still in belief meta", topic)
		}
	}
	if _, ok := s.OpinionVectors["keep"]; !ok {
		t.Error("healthy belief dropped")
	}
}

func TestDetectEntrenchedBeliefs(t *testing.T) {
	s := domain.NewSpongeState()
	s.InteractionCount = 100
	s.OpinionVectors["dogma"] = 0.95
	s.BeliefMeta["dogma"] = domain.BeliefMeta{Confidence: 0.95, LastReinforced: 50}
	s.OpinionVectors["active"] = 0.95
	s.BeliefMeta["active"] = domain.BeliefMeta{Confidence: 0.95, LastReinforced: 95}
	s.OpinionVectors["humble"] = 0.3
	s.BeliefMeta["humble"] = domain.BeliefMeta{Confidence: 0.4, LastReinforced: 10}

	out := DetectEntrenchedBeliefs(s)

	if len(out) != 1 || out[0].Topic != "dogma" {
		t.Fatalf("entrenched = %+v, want only dogma", out)
	}
	if out[0].InteractionsStable != 50 {
		t.Errorf("interactions stable = %d, want 50", out[0].InteractionsStable)
	}
}
