package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StateStore persists the sponge aggregate. Exactly one writer is
// expected per persisted file; saves are serialized by the caller.
type StateStore interface {
	Load() (*SpongeState, error)
	Save(state *SpongeState) error
}

// Claim is a previously seen assertion, embedded for similarity lookup.
// The claim memory backs novelty discounting: a claim close to one the
// sponge has already heard is not novel.
type Claim struct {
	ID        uuid.UUID `json:"id"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type ClaimWithScore struct {
	Claim
	Score float32 `json:"score"`
}

type ClaimStore interface {
	Create(ctx context.Context, c *Claim) error
	FindSimilar(ctx context.Context, topic string, embedding []float32, limit int) ([]ClaimWithScore, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// LLMClient rates incoming messages and produces candidate reflection
// snapshots. Classification failures must surface as a UsedDefaults
// assessment, never as an error that reaches the ledger.
type LLMClient interface {
	AssessEvidence(ctx context.Context, message string) (*EvidenceAssessment, error)
	GenerateReflection(ctx context.Context, snapshot string, diag ReflectionDiagnostics) (string, error)
}

type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
