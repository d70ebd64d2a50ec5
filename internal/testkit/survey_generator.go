package testkit

import (
	"fmt"
	"math/rand"
)

// SurveyGeneratorConfig configures the synthetic survey generator
type SurveyGeneratorConfig struct {
	Topics      []string `json:"topics"`
	Respondents int      `json:"respondents"`
	// GainProbability is the chance a respondent reports one level more after the lesson.
	GainProbability float64 `json:"gain_probability"`
	Seed            int64   `json:"seed"`
}

// DefaultSurveyConfig returns a small multi-topic survey
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		Topics:          []string{"Birds", "Trees", "Insects", "Rivers"},
		Respondents:     40,
		GainProbability: 0.6,
		Seed:            42,
	}
}

// SurveyGenerator produces deterministic survey responses for a seed
type SurveyGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyGenerator creates a generator
func NewSurveyGenerator(config SurveyGeneratorConfig) *SurveyGenerator {
	return &SurveyGenerator{config: config, rng: rand.New(rand.NewSource(config.Seed))}
}

// Generate returns one fixture per configured topic
func (g *SurveyGenerator) Generate() ([]ResponsesFixture, error) {
	if g.config.Respondents <= 0 {
		return nil, fmt.Errorf("respondents must be positive, got %d", g.config.Respondents)
	}

	fixtures := make([]ResponsesFixture, 0, len(g.config.Topics))
	for _, topic := range g.config.Topics {
		fx := ResponsesFixture{Topic: topic}
		for i := 0; i < g.config.Respondents; i++ {
			before := 1 + g.rng.Intn(3)
			after := before
			if g.rng.Float64() < g.config.GainProbability {
				after++
			}
			fx.Before = append(fx.Before, before)
			fx.After = append(fx.After, after)
			fx.Like = append(fx.Like, 1+g.rng.Intn(3))
		}
		fixtures = append(fixtures, fx)
	}
	return fixtures, nil
}
