package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/driftlab/sponge/internal/domain"
	"go.uber.org/zap"
)

const (
	// DefaultDisagreementAlpha is the EWMA weight for the per-interaction
	// disagreement bit.
	DefaultDisagreementAlpha = 0.1

	// DefaultInsightScoreMin is the minimum score for trusted evidence
	// to be recorded as a pending insight.
	DefaultInsightScoreMin = 0.7

	provenanceMaxLen = 120
)

// ContractionEvent reports one belief shrunk ahead of opposing evidence.
type ContractionEvent struct {
	Topic string  `json:"topic"`
	Step  float64 `json:"step"`
}

// InteractionResult summarizes what one interaction did to the sponge.
type InteractionResult struct {
	Interaction     int                          `json:"interaction"`
	Vetoed          bool                         `json:"vetoed"`
	CommittedTopics []string                     `json:"committed_topics"`
	Staged          []domain.StagedOpinionUpdate `json:"staged"`
	Contractions    []ContractionEvent           `json:"contractions"`
	InsightRecorded bool                         `json:"insight_recorded"`
	Reflected       bool                         `json:"reflected"`
}

// SpongeService owns the belief aggregate: it runs the per-interaction
// state machine and persists the result after every interaction. All
// mutation is serialized through a single mutex; the aggregate has
// exactly one logical writer.
type SpongeService struct {
	mu     sync.Mutex
	state  *domain.SpongeState
	store  domain.StateStore
	llm    domain.LLMClient
	logger *zap.Logger

	claims   domain.ClaimStore
	embedder domain.EmbeddingClient

	CoolingPeriod      int
	ReflectionInterval int
	ShiftPressure      float64
	DecayRate          float64
	DisagreementAlpha  float64
	InsightScoreMin    float64
	MaxSnapshotLen     int
}

// NewSpongeService loads the persisted aggregate (or seeds a fresh one)
// and returns a service with default tunables. llm may be nil when only
// pre-rated assessments are processed.
func NewSpongeService(store domain.StateStore, llm domain.LLMClient, logger *zap.Logger) (*SpongeService, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load sponge state: %w", err)
	}

	return &SpongeService{
		state:              state,
		store:              store,
		llm:                llm,
		logger:             logger,
		CoolingPeriod:      DefaultCoolingPeriod,
		ReflectionInterval: DefaultReflectionInterval,
		ShiftPressure:      DefaultShiftPressure,
		DecayRate:          DefaultDecayRate,
		DisagreementAlpha:  DefaultDisagreementAlpha,
		InsightScoreMin:    DefaultInsightScoreMin,
		MaxSnapshotLen:     DefaultMaxSnapshotLen,
	}, nil
}

// SetClaimMemory wires the optional claim store used for novelty
// discounting. Without it the classifier's novelty estimate passes
// through untouched.
func (s *SpongeService) SetClaimMemory(claims domain.ClaimStore, embedder domain.EmbeddingClient) {
	s.claims = claims
	s.embedder = embedder
}

// ProcessMessage classifies a raw message and feeds the resulting
// assessment through the sponge. A classification failure degrades to
// the used-defaults veto; it never reaches the ledger as an error.
func (s *SpongeService) ProcessMessage(ctx context.Context, message string) (*InteractionResult, error) {
	ev, err := s.llm.AssessEvidence(ctx, message)
	if err != nil || ev == nil {
		s.logger.Warn("evidence classification failed, vetoing", zap.Error(err))
		ev = domain.DefaultAssessment()
	}

	if !ev.UsedDefaults {
		s.refineNovelty(ctx, ev, message)
	}

	result, err := s.ProcessAssessment(ctx, ev, provenanceFromMessage(message))
	if err != nil {
		return nil, err
	}

	// Strong trusted evidence is worth folding into the next
	// reflection. Vetoed evidence never records an insight.
	if !ev.UsedDefaults && ev.Trusted() && ev.Score >= s.InsightScoreMin && len(ev.Topics) > 0 {
		insight := fmt.Sprintf("%s evidence (%s) moved my view on %s",
			ev.Reasoning, ev.Source, strings.Join(ev.Topics, ", "))
		if err := s.RecordInsight(insight); err != nil {
			return nil, err
		}
		result.InsightRecorded = true
	}

	return result, nil
}

// ProcessAssessment runs one interaction tick: increment the counter,
// commit due staged updates, contract opposing beliefs, stage new
// nudges, track behavioral signals, maybe reflect, and persist. A save
// failure is fatal for the interaction but leaves in-memory state
// consistent for retry on the next one.
func (s *SpongeService) ProcessAssessment(ctx context.Context, ev *domain.EvidenceAssessment, provenance string) (*InteractionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.InteractionCount++

	result := &InteractionResult{
		Interaction:     st.InteractionCount,
		CommittedTopics: ApplyDueStagedUpdates(st),
	}

	if ev == nil || ev.UsedDefaults {
		result.Vetoed = true
	} else {
		s.absorbEvidence(st, ev, provenance, result)
	}

	if s.shouldReflect() {
		result.Reflected = s.reflectLocked(ctx)
	}

	if err := s.store.Save(st); err != nil {
		return nil, fmt.Errorf("persist sponge state: %w", err)
	}

	s.logger.Debug("interaction processed",
		zap.Int("interaction", st.InteractionCount),
		zap.Bool("vetoed", result.Vetoed),
		zap.Strings("committed", result.CommittedTopics),
		zap.Int("staged", len(result.Staged)))

	return result, nil
}

func (s *SpongeService) absorbEvidence(st *domain.SpongeState, ev *domain.EvidenceAssessment, provenance string, result *InteractionResult) {
	disagreed := false

	for _, topic := range ev.Topics {
		st.Signature.TopicEngagement[topic]++

		pos := st.OpinionVectors[topic]
		if ev.Direction != 0 && pos*float64(ev.Direction) < 0 {
			disagreed = true
		}

		if ShouldContract(st, topic, ev.Direction, ev) {
			step := ApplyContraction(st, topic)
			result.Contractions = append(result.Contractions, ContractionEvent{Topic: topic, Step: step})
		}

		if ev.Direction == 0 {
			continue
		}

		mag := Magnitude(ev, st.InteractionCount)
		// Established beliefs resist change in proportion to their
		// confidence; this division stays out of the calculator.
		applied := mag / (st.BeliefMeta[topic].Confidence + 1)
		if applied <= 0 {
			continue
		}

		staged := StageUpdate(st, topic, ev.Direction, applied, s.CoolingPeriod, provenance)
		result.Staged = append(result.Staged, staged)
	}

	bit := 0.0
	if disagreed {
		bit = 1.0
	}
	st.Signature.DisagreementRate += s.DisagreementAlpha * (bit - st.Signature.DisagreementRate)
}

// RecordInsight accepts a pending insight for the next reflection.
// Accepted insights are narrative-affecting, so the version advances by
// exactly one; purely numeric processing never touches it.
func (s *SpongeService) RecordInsight(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("insight text is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.PendingInsights = append(s.state.PendingInsights, text)
	s.state.Version++

	if err := s.store.Save(s.state); err != nil {
		return fmt.Errorf("persist sponge state: %w", err)
	}
	return nil
}

// refineNovelty replaces the classifier's novelty estimate with one
// measured against the claim memory: a claim close to one already heard
// is not novel. Failures leave the estimate untouched.
func (s *SpongeService) refineNovelty(ctx context.Context, ev *domain.EvidenceAssessment, message string) {
	if s.claims == nil || s.embedder == nil || len(ev.Topics) == 0 {
		return
	}

	embedding, err := s.embedder.Embed(ctx, message)
	if err != nil {
		s.logger.Warn("claim embedding failed", zap.Error(err))
		return
	}

	maxSim := float32(0)
	for _, topic := range ev.Topics {
		similar, err := s.claims.FindSimilar(ctx, topic, embedding, 5)
		if err != nil {
			s.logger.Warn("claim lookup failed", zap.String("topic", topic), zap.Error(err))
			continue
		}
		for _, c := range similar {
			if c.Score > maxSim {
				maxSim = c.Score
			}
		}
	}
	ev.Novelty = math.Min(ev.Novelty, float64(1-maxSim))

	for _, topic := range ev.Topics {
		claim := &domain.Claim{Topic: topic, Content: message, Embedding: embedding}
		if err := s.claims.Create(ctx, claim); err != nil {
			s.logger.Warn("claim record failed", zap.String("topic", topic), zap.Error(err))
		}
	}
}

// Reset replaces the aggregate with a fresh seed and persists it.
func (s *SpongeService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := domain.NewSpongeState()
	if err := s.store.Save(fresh); err != nil {
		return fmt.Errorf("persist fresh sponge state: %w", err)
	}
	s.state = fresh
	return nil
}

func provenanceFromMessage(message string) string {
	message = strings.TrimSpace(message)
	if len(message) > provenanceMaxLen {
		message = message[:provenanceMaxLen] + "…"
	}
	return "message: " + message
}
