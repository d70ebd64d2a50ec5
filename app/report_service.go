package app

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/marshallyale/go-outdoors-learning/domain/survey"
	"github.com/marshallyale/go-outdoors-learning/internal/analysis"
	"github.com/marshallyale/go-outdoors-learning/internal/errors"
	"github.com/marshallyale/go-outdoors-learning/internal/loader"
	"github.com/marshallyale/go-outdoors-learning/ports"
)

// ReportService turns a survey file into one chart per topic
type ReportService struct {
	loader     *loader.Loader
	aggregator *analysis.Aggregator
	renderer   ports.ChartRendererPort
}

// TopicReport is what was produced for one topic
type TopicReport struct {
	Topic      string                       `json:"topic"`
	Knowledge  survey.KnowledgeDistribution `json:"knowledge"`
	Interest   survey.InterestDistribution  `json:"interest"`
	Summary    analysis.KnowledgeSummary    `json:"summary"`
	OutputPath string                       `json:"output_path"`
}

// RunReport contains the complete output of a run
type RunReport struct {
	RunID     uuid.UUID     `json:"run_id"`
	Input     string        `json:"input"`
	Topics    []TopicReport `json:"topics"`
	RuntimeMs int64         `json:"runtime_ms"`
}

// NewReportService creates a report service
func NewReportService(loader *loader.Loader, aggregator *analysis.Aggregator, renderer ports.ChartRendererPort) *ReportService {
	return &ReportService{
		loader:     loader,
		aggregator: aggregator,
		renderer:   renderer,
	}
}

// Run loads inputPath, then aggregates and renders each topic in order. The first error
// stops the run; a validation error stops it before anything is rendered.
func (s *ReportService) Run(ctx context.Context, inputPath string) (*RunReport, error) {
	startTime := time.Now()
	report := &RunReport{RunID: uuid.New(), Input: inputPath}

	log.Printf("[Pipeline] run %s: reading %s", report.RunID, inputPath)
	topics, err := s.loader.Load(inputPath)
	if err != nil {
		return nil, err
	}

	for _, topic := range topics {
		if err := ctx.Err(); err != nil {
			return report, errors.Wrap(err, "run cancelled")
		}

		topicReport, err := s.processTopic(topic)
		if err != nil {
			return report, errors.Wrapf(err, "topic %s", topic.Name)
		}
		report.Topics = append(report.Topics, *topicReport)
	}

	report.RuntimeMs = time.Since(startTime).Milliseconds()
	log.Printf("[Pipeline] run %s: %d charts written in %dms", report.RunID, len(report.Topics), report.RuntimeMs)
	return report, nil
}

func (s *ReportService) processTopic(topic survey.Topic) (*TopicReport, error) {
	log.Printf("[Pipeline] Generating plots for topic %s", topic.Name)

	counts, err := s.aggregator.Count(topic)
	if err != nil {
		return nil, err
	}
	knowledge, interest := s.aggregator.Distributions(counts)

	summary := analysis.Summarize(counts)
	log.Printf("[Pipeline] %s: mean level %.2f -> %.2f (gain %+.2f, chi2=%.2f, df=%d, p=%.3f)",
		topic.Name, summary.MeanBefore, summary.MeanAfter, summary.Gain, summary.ChiSquare, summary.DF, summary.PValue)

	path, err := s.renderer.Render(survey.FormatFor(topic.Mode), knowledge, interest)
	if err != nil {
		return nil, err
	}

	return &TopicReport{
		Topic:      topic.Name,
		Knowledge:  knowledge,
		Interest:   interest,
		Summary:    summary,
		OutputPath: path,
	}, nil
}
