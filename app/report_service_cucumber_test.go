//go:build cucumber

package app

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/marshallyale/go-outdoors-learning/internal/testkit"
)

// TestSurveyPlotScenarios runs the survey plot feature scenarios.
func TestSurveyPlotScenarios(t *testing.T) {
	featurePath := filepath.Join("testdata", "features", "pipeline.feature")
	suite := godog.TestSuite{
		Name:                "survey-plots",
		ScenarioInitializer: InitializePipelineScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializePipelineScenario wires steps for survey plot scenarios.
func InitializePipelineScenario(ctx *godog.ScenarioContext) {
	state := &pipelineScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		return ctx, os.RemoveAll(state.workDir)
	})

	ctx.Step(`^a CSV export with the Birds topic$`, state.givenBirdsCSV)
	ctx.Step(`^a tally workbook with the Trees sheet and an empty sheet$`, state.givenTreesWorkbook)
	ctx.Step(`^a CSV export where the Trees topic has no AFTER question$`, state.givenMissingAfter)
	ctx.Step(`^I generate the plots$`, state.whenIGenerateThePlots)
	ctx.Step(`^the run succeeds$`, state.thenRunSucceeds)
	ctx.Step(`^the run fails with "([^"]+)"$`, state.thenRunFailsWith)
	ctx.Step(`^the output directory contains exactly "([^"]+)"$`, state.thenOutputContainsExactly)
	ctx.Step(`^the output directory is empty$`, state.thenOutputIsEmpty)
	ctx.Step(`^the "([^"]+)" knowledge (before|after) row is "([^"]+)"$`, state.thenKnowledgeRow)
	ctx.Step(`^the "([^"]+)" interest labels are "([^"]+)"$`, state.thenInterestLabels)
}

// pipelineScenarioState holds scenario state for survey plot feature tests.
type pipelineScenarioState struct {
	workDir string
	outDir  string
	input   string
	report  *RunReport
	err     error
}

// reset gives each scenario fresh input and output directories.
func (s *pipelineScenarioState) reset() error {
	workDir, err := os.MkdirTemp("", "survey-plots-*")
	if err != nil {
		return err
	}
	s.workDir = workDir
	s.outDir = filepath.Join(workDir, "plots")
	s.input = ""
	s.report = nil
	s.err = nil
	return os.Mkdir(s.outDir, 0o755)
}

func (s *pipelineScenarioState) givenBirdsCSV() error {
	s.input = filepath.Join(s.workDir, "survey.csv")
	return testkit.WriteResponsesCSV(s.input, testkit.BirdsFixture())
}

func (s *pipelineScenarioState) givenTreesWorkbook() error {
	s.input = filepath.Join(s.workDir, "tallies.xlsx")
	return testkit.WriteTallyWorkbook(s.input, testkit.TreesSheet(), testkit.TallySheet{Name: "Notes", Empty: true})
}

func (s *pipelineScenarioState) givenMissingAfter() error {
	s.input = filepath.Join(s.workDir, "survey.csv")
	trees := testkit.ResponsesFixture{Topic: "Trees", Before: []int{1, 2}, Like: []int{2, 3}, OmitAfter: true}
	return testkit.WriteResponsesCSV(s.input, testkit.BirdsFixture(), trees)
}

// whenIGenerateThePlots runs the report service against the scenario input.
func (s *pipelineScenarioState) whenIGenerateThePlots() error {
	if s.input == "" {
		return fmt.Errorf("input is not set")
	}
	s.report, s.err = newService(s.outDir).Run(context.Background(), s.input)
	return nil
}

func (s *pipelineScenarioState) thenRunSucceeds() error {
	if s.err != nil {
		return fmt.Errorf("expected success, got %v", s.err)
	}
	return nil
}

func (s *pipelineScenarioState) thenRunFailsWith(message string) error {
	if s.err == nil {
		return fmt.Errorf("expected the run to fail")
	}
	if !strings.Contains(s.err.Error(), message) {
		return fmt.Errorf("expected error to contain %q, got %q", message, s.err.Error())
	}
	return nil
}

func (s *pipelineScenarioState) outputNames() ([]string, error) {
	entries, err := os.ReadDir(s.outDir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *pipelineScenarioState) thenOutputContainsExactly(name string) error {
	names, err := s.outputNames()
	if err != nil {
		return err
	}
	if len(names) != 1 || names[0] != name {
		return fmt.Errorf("expected only %s, got %v", name, names)
	}
	return nil
}

func (s *pipelineScenarioState) thenOutputIsEmpty() error {
	names, err := s.outputNames()
	if err != nil {
		return err
	}
	if len(names) != 0 {
		return fmt.Errorf("expected no files, got %v", names)
	}
	return nil
}

func (s *pipelineScenarioState) topic(name string) (*TopicReport, error) {
	if s.report == nil {
		return nil, fmt.Errorf("no report recorded")
	}
	for i := range s.report.Topics {
		if s.report.Topics[i].Topic == name {
			return &s.report.Topics[i], nil
		}
	}
	return nil, fmt.Errorf("topic %s not in report", name)
}

// thenKnowledgeRow compares a knowledge row to comma separated percentages.
func (s *pipelineScenarioState) thenKnowledgeRow(name, row, expected string) error {
	topic, err := s.topic(name)
	if err != nil {
		return err
	}
	got := topic.Knowledge.Before
	if row == "after" {
		got = topic.Knowledge.After
	}
	want := strings.Split(expected, ",")
	if len(want) != len(got) {
		return fmt.Errorf("expected %d levels, got %v", len(want), got)
	}
	for i, w := range want {
		value, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return err
		}
		if math.Abs(value-got[i]) > 1e-6 {
			return fmt.Errorf("level %d: expected %v, got %v", i, value, got[i])
		}
	}
	return nil
}

func (s *pipelineScenarioState) thenInterestLabels(name, expected string) error {
	topic, err := s.topic(name)
	if err != nil {
		return err
	}
	if got := strings.Join(topic.Interest.Labels(), ","); got != expected {
		return fmt.Errorf("expected labels %s, got %s", expected, got)
	}
	return nil
}
