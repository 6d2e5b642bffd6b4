package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/driftlab/sponge/internal/domain"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of pre-rated assessments with
// expectations about how the sponge should respond.
type Scenario struct {
	Name          string `yaml:"name"`
	Description   string `yaml:"description"`
	CoolingPeriod *int   `yaml:"cooling_period"`
	Steps         []Step `yaml:"steps"`
}

type Step struct {
	Name       string      `yaml:"name"`
	Assessment Assessment  `yaml:"assessment"`
	Expect     Expectation `yaml:"expect"`
}

// Assessment is the YAML mirror of domain.EvidenceAssessment.
type Assessment struct {
	Score                float64  `yaml:"score"`
	Novelty              float64  `yaml:"novelty"`
	Reasoning            string   `yaml:"reasoning"`
	Source               string   `yaml:"source"`
	InternallyConsistent bool     `yaml:"internally_consistent"`
	Topics               []string `yaml:"topics"`
	Direction            int      `yaml:"direction"`
	UsedDefaults         bool     `yaml:"used_defaults"`
}

func (a Assessment) toDomain() *domain.EvidenceAssessment {
	return &domain.EvidenceAssessment{
		Score:                a.Score,
		Novelty:              a.Novelty,
		Reasoning:            domain.ReasoningTier(a.Reasoning),
		Source:               domain.SourceTier(a.Source),
		InternallyConsistent: a.InternallyConsistent,
		Topics:               a.Topics,
		Direction:            a.Direction,
		UsedDefaults:         a.UsedDefaults,
	}
}

// Expectation asserts on the outcome of one step. Nil fields are not
// checked.
type Expectation struct {
	Vetoed              *bool    `yaml:"vetoed"`
	ShouldStage         *bool    `yaml:"should_stage"`
	ShouldCommit        *bool    `yaml:"should_commit"`
	ShouldContract      *bool    `yaml:"should_contract"`
	TopicsTracked       []string `yaml:"topics_tracked"`
	MinDisagreementRate *float64 `yaml:"min_disagreement_rate"`
	MaxDisagreementRate *float64 `yaml:"max_disagreement_rate"`
}

// LoadScenario parses one YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = filepath.Base(path)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}
	return &sc, nil
}

// LoadDir loads every *.yaml/*.yml scenario under dir, sorted by file
// name for stable run order.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scenario dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}
