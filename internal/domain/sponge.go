package domain

import (
	"github.com/google/uuid"
)

// SchemaVersion is the persisted file format version. Bump on any
// incompatible change to SpongeState's serialized shape.
const SchemaVersion = 1

// DefaultTone is the seed tone for a fresh sponge.
const DefaultTone = "curious"

// DefaultSnapshot is the seed narrative for a fresh sponge.
const DefaultSnapshot = "I am forming my views. I hold no strong opinions yet."

// BeliefMeta tracks epistemic bookkeeping for one topic the sponge
// holds a position on.
type BeliefMeta struct {
	Confidence     float64 `json:"confidence"`
	EvidenceCount  int     `json:"evidence_count"`
	LastReinforced int     `json:"last_reinforced"`
}

// StagedOpinionUpdate is a belief nudge scheduled to commit at a future
// interaction. Magnitude is signed: direction times size. Entries are
// removed once committed.
type StagedOpinionUpdate struct {
	Topic          string  `json:"topic"`
	Magnitude      float64 `json:"magnitude"`
	DueInteraction int     `json:"due_interaction"`
	Provenance     string  `json:"provenance"`
}

// Direction returns the sign of the staged magnitude.
func (u StagedOpinionUpdate) Direction() int {
	switch {
	case u.Magnitude > 0:
		return 1
	case u.Magnitude < 0:
		return -1
	}
	return 0
}

// Shift is one entry in the append-only audit trail of notable belief
// events: staged commits, contractions, reflections.
type Shift struct {
	ID          uuid.UUID `json:"id"`
	Interaction int       `json:"interaction"`
	Magnitude   float64   `json:"magnitude"`
	Description string    `json:"description"`
}

// BehavioralSignature summarizes observable interaction behavior.
type BehavioralSignature struct {
	TopicEngagement  map[string]int `json:"topic_engagement"`
	DisagreementRate float64        `json:"disagreement_rate"`
}

// SpongeState is the persistent personality aggregate. It is owned by a
// single process, mutated once per interaction, and persisted after
// every interaction.
type SpongeState struct {
	SchemaVersion    int                   `json:"schema_version"`
	Snapshot         string                `json:"snapshot"`
	Version          int                   `json:"version"`
	InteractionCount int                   `json:"interaction_count"`
	Tone             string                `json:"tone"`
	OpinionVectors   map[string]float64    `json:"opinion_vectors"`
	BeliefMeta       map[string]BeliefMeta `json:"belief_meta"`
	StagedUpdates    []StagedOpinionUpdate `json:"staged_opinion_updates"`
	PendingInsights  []string              `json:"pending_insights"`
	RecentShifts     []Shift               `json:"recent_shifts"`
	Signature        BehavioralSignature   `json:"behavioral_signature"`
	LastReflectionAt int                   `json:"last_reflection_at"`
	LastCycleAt      int                   `json:"last_cycle_at"`
}

// NewSpongeState returns a fresh seed aggregate: version 0, empty ledger.
func NewSpongeState() *SpongeState {
	return &SpongeState{
		SchemaVersion:  SchemaVersion,
		Snapshot:       DefaultSnapshot,
		Tone:           DefaultTone,
		OpinionVectors: make(map[string]float64),
		BeliefMeta:     make(map[string]BeliefMeta),
		Signature: BehavioralSignature{
			TopicEngagement: make(map[string]int),
		},
	}
}

// Normalize replaces nil maps with empty ones so callers can index
// without nil checks after deserialization.
func (s *SpongeState) Normalize() {
	if s.OpinionVectors == nil {
		s.OpinionVectors = make(map[string]float64)
	}
	if s.BeliefMeta == nil {
		s.BeliefMeta = make(map[string]BeliefMeta)
	}
	if s.Signature.TopicEngagement == nil {
		s.Signature.TopicEngagement = make(map[string]int)
	}
}

// ContradictionSummary describes a not-yet-due staged update whose
// direction opposes an established ledger position.
type ContradictionSummary struct {
	Topic           string  `json:"topic"`
	Position        float64 `json:"position"`
	StagedMagnitude float64 `json:"staged_magnitude"`
	Opposition      float64 `json:"opposition"`
	DueInteraction  int     `json:"due_interaction"`
	Provenance      string  `json:"provenance"`
}

// EntrenchedBelief flags a topic whose confidence has sat very high
// without reinforcement for a long window. Diagnostic only.
type EntrenchedBelief struct {
	Topic              string  `json:"topic"`
	Position           float64 `json:"position"`
	Confidence         float64 `json:"confidence"`
	InteractionsStable int     `json:"interactions_stable"`
}

// ReflectionDiagnostics is the context handed to the reflection text
// producer alongside the current snapshot.
type ReflectionDiagnostics struct {
	DroppedTopics   []string               `json:"dropped_topics"`
	Entrenched      []EntrenchedBelief     `json:"entrenched"`
	Contradictions  []ContradictionSummary `json:"contradictions"`
	RecentShifts    []Shift                `json:"recent_shifts"`
	PendingInsights []string               `json:"pending_insights"`
}
