package domain

// ReasoningTier classifies the argumentative structure of a message.
type ReasoningTier string

const (
	ReasoningLogicalArgument ReasoningTier = "logical_argument"
	ReasoningEmpiricalData   ReasoningTier = "empirical_data"
	ReasoningExpertOpinion   ReasoningTier = "expert_opinion"
	ReasoningAnecdote        ReasoningTier = "anecdote"
	ReasoningSocialPressure  ReasoningTier = "social_pressure"
	ReasoningUnverifiedClaim ReasoningTier = "unverified_claim"
)

// Trusted reports whether the reasoning tier belongs to the trusted set.
func (r ReasoningTier) Trusted() bool {
	switch r {
	case ReasoningLogicalArgument, ReasoningEmpiricalData, ReasoningExpertOpinion:
		return true
	}
	return false
}

func ValidReasoningTier(r string) bool {
	switch ReasoningTier(r) {
	case ReasoningLogicalArgument, ReasoningEmpiricalData, ReasoningExpertOpinion,
		ReasoningAnecdote, ReasoningSocialPressure, ReasoningUnverifiedClaim:
		return true
	}
	return false
}

// SourceTier classifies where a claim is sourced from.
type SourceTier string

const (
	SourcePeerReviewed      SourceTier = "peer_reviewed"
	SourceEstablishedExpert SourceTier = "established_expert"
	SourceInformedOpinion   SourceTier = "informed_opinion"
	SourceCasualObservation SourceTier = "casual_observation"
	SourceUnknown           SourceTier = "unknown"
)

// Trusted reports whether the source tier belongs to the trusted set.
func (s SourceTier) Trusted() bool {
	switch s {
	case SourcePeerReviewed, SourceEstablishedExpert, SourceInformedOpinion:
		return true
	}
	return false
}

func ValidSourceTier(s string) bool {
	switch SourceTier(s) {
	case SourcePeerReviewed, SourceEstablishedExpert, SourceInformedOpinion,
		SourceCasualObservation, SourceUnknown:
		return true
	}
	return false
}

// EvidenceAssessment is the externally computed rating of one incoming
// message's argument quality. UsedDefaults marks an upstream
// classification failure and acts as a hard veto: the ledger must not
// mutate for vetoed evidence.
type EvidenceAssessment struct {
	Score                float64       `json:"score"`
	Novelty              float64       `json:"novelty"`
	Reasoning            ReasoningTier `json:"reasoning"`
	Source               SourceTier    `json:"source"`
	InternallyConsistent bool          `json:"internally_consistent"`
	Topics               []string      `json:"topics"`
	Direction            int           `json:"direction"`
	UsedDefaults         bool          `json:"used_defaults"`
}

// Trusted reports whether both tiers are trusted and the evidence is
// internally consistent.
func (e *EvidenceAssessment) Trusted() bool {
	return e.Reasoning.Trusted() && e.Source.Trusted() && e.InternallyConsistent
}

// DefaultAssessment returns the veto assessment used when upstream
// classification fails.
func DefaultAssessment() *EvidenceAssessment {
	return &EvidenceAssessment{
		Score:        0.5,
		Novelty:      0.5,
		Reasoning:    ReasoningUnverifiedClaim,
		Source:       SourceUnknown,
		UsedDefaults: true,
	}
}
