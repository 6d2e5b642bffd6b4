package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/driftlab/sponge/internal/service"
	"github.com/driftlab/sponge/internal/store"
	"go.uber.org/zap"
)

// Result is the outcome of one scenario run.
type Result struct {
	Scenario string
	Failures []string
}

func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Runner executes scenarios against a fresh sponge each, persisted to a
// throwaway directory so runs never touch live state.
type Runner struct {
	logger *zap.Logger
}

func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger}
}

func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "sponge-bench-*")
	if err != nil {
		return nil, fmt.Errorf("create bench workspace: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	stateStore := store.NewStateStore(
		filepath.Join(dir, "state.json"),
		filepath.Join(dir, "history"),
		r.logger,
	)

	svc, err := service.NewSpongeService(stateStore, nil, r.logger)
	if err != nil {
		return nil, err
	}
	if sc.CoolingPeriod != nil {
		svc.CoolingPeriod = *sc.CoolingPeriod
	}

	result := &Result{Scenario: sc.Name}

	for i, step := range sc.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}

		res, err := svc.ProcessAssessment(ctx, step.Assessment.toDomain(), "bench: "+name)
		if err != nil {
			return nil, fmt.Errorf("scenario %s, %s: %w", sc.Name, name, err)
		}

		r.check(result, svc, name, step.Expect, res)
	}

	return result, nil
}

func (r *Runner) check(result *Result, svc *service.SpongeService, step string, exp Expectation, res *service.InteractionResult) {
	fail := func(format string, args ...any) {
		result.Failures = append(result.Failures, fmt.Sprintf("%s: %s", step, fmt.Sprintf(format, args...)))
	}

	if exp.Vetoed != nil && res.Vetoed != *exp.Vetoed {
		fail("vetoed = %v, want %v", res.Vetoed, *exp.Vetoed)
	}
	if exp.ShouldStage != nil {
		staged := len(res.Staged) > 0
		if staged != *exp.ShouldStage {
			fail("staged %d updates, want staging = %v", len(res.Staged), *exp.ShouldStage)
		}
	}
	if exp.ShouldCommit != nil {
		committed := len(res.CommittedTopics) > 0
		if committed != *exp.ShouldCommit {
			fail("committed %v, want commit = %v", res.CommittedTopics, *exp.ShouldCommit)
		}
	}
	if exp.ShouldContract != nil {
		contracted := len(res.Contractions) > 0
		if contracted != *exp.ShouldContract {
			fail("contractions %v, want contraction = %v", res.Contractions, *exp.ShouldContract)
		}
	}

	if len(exp.TopicsTracked) > 0 {
		sig := svc.BehavioralSignature()
		for _, topic := range exp.TopicsTracked {
			if sig.TopicEngagement[topic] == 0 {
				fail("topic %q not tracked in engagement", topic)
			}
		}
	}

	rate := svc.BehavioralSignature().DisagreementRate
	if exp.MinDisagreementRate != nil && rate < *exp.MinDisagreementRate {
		fail("disagreement rate %.3f below %.3f", rate, *exp.MinDisagreementRate)
	}
	if exp.MaxDisagreementRate != nil && rate > *exp.MaxDisagreementRate {
		fail("disagreement rate %.3f above %.3f", rate, *exp.MaxDisagreementRate)
	}
}

// Summary renders a human-readable pass/fail report.
func Summary(results []*Result) string {
	var sb strings.Builder
	passed := 0

	for _, res := range results {
		if res.Passed() {
			passed++
			fmt.Fprintf(&sb, "PASS %s\n", res.Scenario)
			continue
		}
		fmt.Fprintf(&sb, "FAIL %s\n", res.Scenario)
		for _, f := range res.Failures {
			fmt.Fprintf(&sb, "  - %s\n", f)
		}
	}

	fmt.Fprintf(&sb, "%d/%d scenarios passed\n", passed, len(results))
	return sb.String()
}
