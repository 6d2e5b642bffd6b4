package domain

import "testing"

func TestTrustedTiers(t *testing.T) {
	trustedReasoning := []ReasoningTier{ReasoningLogicalArgument, ReasoningEmpiricalData, ReasoningExpertOpinion}
	untrustedReasoning := []ReasoningTier{ReasoningAnecdote, ReasoningSocialPressure, ReasoningUnverifiedClaim}

	for _, r := range trustedReasoning {
		if !r.Trusted() {
			t.Errorf("%s should be trusted", r)
		}
	}
	for _, r := range untrustedReasoning {
		if r.Trusted() {
			t.Errorf("%s should not be trusted", r)
		}
	}

	trustedSources := []SourceTier{SourcePeerReviewed, SourceEstablishedExpert, SourceInformedOpinion}
	untrustedSources := []SourceTier{SourceCasualObservation, SourceUnknown}

	for _, s := range trustedSources {
		if !s.Trusted() {
			t.Errorf("%s should be trusted", s)
		}
	}
	for _, s := range untrustedSources {
		if s.Trusted() {
			t.Errorf("%s should not be trusted", s)
		}
	}
}

func TestAssessmentTrustedRequiresConsistency(t *testing.T) {
	ev := EvidenceAssessment{
		Reasoning:            ReasoningEmpiricalData,
		Source:               SourcePeerReviewed,
		InternallyConsistent: true,
	}
	if !ev.Trusted() {
		t.Error("consistent evidence with trusted tiers should be trusted")
	}

	ev.InternallyConsistent = false
	if ev.Trusted() {
		t.Error("inconsistent evidence must never be trusted")
	}
}

func TestDefaultAssessmentIsVeto(t *testing.T) {
	ev := DefaultAssessment()
	if !ev.UsedDefaults {
		t.Fatal("default assessment must carry the used_defaults marker")
	}
	if ev.Trusted() {
		t.Error("default assessment must not be trusted")
	}
	if ev.Direction != 0 || len(ev.Topics) != 0 {
		t.Errorf("default assessment must be inert: direction=%d topics=%v", ev.Direction, ev.Topics)
	}
}

func TestStagedUpdateDirection(t *testing.T) {
	tests := []struct {
		magnitude float64
		want      int
	}{
		{0.1, 1},
		{-0.1, -1},
		{0, 0},
	}
	for _, tt := range tests {
		u := StagedOpinionUpdate{Magnitude: tt.magnitude}
		if got := u.Direction(); got != tt.want {
			t.Errorf("Direction(%f) = %d, want %d", tt.magnitude, got, tt.want)
		}
	}
}

func TestNormalizeReplacesNilMaps(t *testing.T) {
	var s SpongeState
	s.Normalize()

	if s.OpinionVectors == nil || s.BeliefMeta == nil || s.Signature.TopicEngagement == nil {
		t.Error("Normalize left a nil map")
	}
}
