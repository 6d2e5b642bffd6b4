package llm

import (
	"testing"

	"github.com/driftlab/sponge/internal/domain"
)

func TestParseAssessment(t *testing.T) {
	valid := `{"score": 0.8, "novelty": 0.6, "reasoning": "empirical_data", "source": "peer_reviewed",
		"internally_consistent": true, "topics": ["solar"], "direction": 1}`

	tests := []struct {
		name         string
		raw          string
		wantDefaults bool
	}{
		{"clean json", valid, false},
		{"json wrapped in prose", "Sure, here is the rating:\n" + valid + "\nHope that helps!", false},
		{"not json at all", "I cannot rate this message.", true},
		{"truncated json", `{"score": 0.8, "novelty":`, true},
		{"unknown reasoning tier", `{"score": 0.5, "novelty": 0.5, "reasoning": "vibes", "source": "unknown"}`, true},
		{"unknown source tier", `{"score": 0.5, "novelty": 0.5, "reasoning": "anecdote", "source": "my_uncle"}`, true},
		{"score out of range", `{"score": 1.4, "novelty": 0.5, "reasoning": "anecdote", "source": "unknown"}`, true},
		{"negative novelty", `{"score": 0.5, "novelty": -0.1, "reasoning": "anecdote", "source": "unknown"}`, true},
		{"direction out of range", `{"score": 0.5, "novelty": 0.5, "reasoning": "anecdote", "source": "unknown", "direction": 2}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := parseAssessment(tt.raw)
			if ev.UsedDefaults != tt.wantDefaults {
				t.Errorf("used_defaults = %v, want %v", ev.UsedDefaults, tt.wantDefaults)
			}
			if !tt.wantDefaults && !ev.Trusted() {
				t.Errorf("valid trusted assessment parsed as untrusted: %+v", ev)
			}
		})
	}
}

func TestParseAssessmentPreservesFields(t *testing.T) {
	ev := parseAssessment(`{"score": 0.7, "novelty": 0.9, "reasoning": "expert_opinion",
		"source": "established_expert", "internally_consistent": true,
		"topics": ["nuclear", "grid"], "direction": -1}`)

	if ev.UsedDefaults {
		t.Fatal("unexpected defaults")
	}
	if ev.Score != 0.7 || ev.Novelty != 0.9 {
		t.Errorf("score/novelty = %f/%f", ev.Score, ev.Novelty)
	}
	if ev.Reasoning != domain.ReasoningExpertOpinion || ev.Source != domain.SourceEstablishedExpert {
		t.Errorf("tiers = %s/%s", ev.Reasoning, ev.Source)
	}
	if len(ev.Topics) != 2 || ev.Direction != -1 {
		t.Errorf("topics/direction = %v/%d", ev.Topics, ev.Direction)
	}
}

func TestHeuristicAssessment(t *testing.T) {
	tests := []struct {
		name          string
		message       string
		wantReasoning domain.ReasoningTier
		wantDirection int
	}{
		{"research phrasing", "studies show solar output keeps climbing", domain.ReasoningEmpiricalData, 1},
		{"expert phrasing", "a scientist explained the grid tradeoffs", domain.ReasoningExpertOpinion, 1},
		{"social phrasing", "everyone thinks nuclear is obsolete", domain.ReasoningSocialPressure, 1},
		{"negated claim", "nuclear is bad for ratepayers", domain.ReasoningUnverifiedClaim, -1},
		{"plain claim", "heat pumps work fine in winter", domain.ReasoningUnverifiedClaim, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := heuristicAssessment(tt.message)
			if ev.Reasoning != tt.wantReasoning {
				t.Errorf("reasoning = %s, want %s", ev.Reasoning, tt.wantReasoning)
			}
			if ev.Direction != tt.wantDirection {
				t.Errorf("direction = %d, want %d", ev.Direction, tt.wantDirection)
			}
			if len(ev.Topics) == 0 {
				t.Error("no topics extracted")
			}
			if ev.UsedDefaults {
				t.Error("heuristic must never veto")
			}
		})
	}
}

func TestFormatDiagnosticsEmpty(t *testing.T) {
	if got := formatDiagnostics(domain.ReflectionDiagnostics{}); got != "No notable activity." {
		t.Errorf("got %q", got)
	}
}
