package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/driftlab/sponge/internal/domain"
)

const assessEvidencePrompt = `You rate the argument quality of a message directed at a conversational agent.

Respond with ONLY a JSON object, no prose:
{
  "score": 0.0-1.0,            // overall argument strength
  "novelty": 0.0-1.0,          // how new this claim is likely to be
  "reasoning": "...",          // one of: logical_argument, empirical_data, expert_opinion, anecdote, social_pressure, unverified_claim
  "source": "...",             // one of: peer_reviewed, established_expert, informed_opinion, casual_observation, unknown
  "internally_consistent": true/false,
  "topics": ["..."],           // short lowercase topic keys the message takes a stance on
  "direction": -1|0|1          // stance direction on those topics
}

Message:
%s`

const generateReflectionPrompt = `You consolidate a conversational agent's self-narrative.

Current narrative:
%s

Recent activity:
%s

Write a replacement narrative in first person, under 150 words. Fold in
the insights, acknowledge dropped or contradicted views, and keep the
agent's voice. Respond with ONLY the narrative text.`

// parseAssessment decodes the classifier's JSON reply. Any parse or
// validation failure returns the used-defaults veto assessment rather
// than an error: upstream failures must never reach the ledger.
func parseAssessment(raw string) *domain.EvidenceAssessment {
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var ev domain.EvidenceAssessment
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return domain.DefaultAssessment()
	}
	if !domain.ValidReasoningTier(string(ev.Reasoning)) || !domain.ValidSourceTier(string(ev.Source)) {
		return domain.DefaultAssessment()
	}
	if ev.Score < 0 || ev.Score > 1 || ev.Novelty < 0 || ev.Novelty > 1 {
		return domain.DefaultAssessment()
	}
	if ev.Direction < -1 || ev.Direction > 1 {
		return domain.DefaultAssessment()
	}
	return &ev
}

func formatDiagnostics(diag domain.ReflectionDiagnostics) string {
	var sb strings.Builder

	if len(diag.PendingInsights) > 0 {
		sb.WriteString("Insights:\n")
		for _, insight := range diag.PendingInsights {
			fmt.Fprintf(&sb, "- %s\n", insight)
		}
	}
	if len(diag.DroppedTopics) > 0 {
		fmt.Fprintf(&sb, "Faded topics: %s\n", strings.Join(diag.DroppedTopics, ", "))
	}
	for _, e := range diag.Entrenched {
		fmt.Fprintf(&sb, "Entrenched: %s (confidence %.2f, stable %d interactions)\n",
			e.Topic, e.Confidence, e.InteractionsStable)
	}
	for _, c := range diag.Contradictions {
		fmt.Fprintf(&sb, "Pending contradiction: %s (position %+.2f vs staged %+.3f)\n",
			c.Topic, c.Position, c.StagedMagnitude)
	}
	for _, shift := range diag.RecentShifts {
		fmt.Fprintf(&sb, "Shift @%d: %s\n", shift.Interaction, shift.Description)
	}

	if sb.Len() == 0 {
		return "No notable activity."
	}
	return sb.String()
}
