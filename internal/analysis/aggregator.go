package analysis

import (
	"fmt"
	"log"
	"math"
	"slices"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/marshallyale/go-outdoors-learning/domain/survey"
	"github.com/marshallyale/go-outdoors-learning/internal/errors"
)

// Counts holds the raw vote counts of one topic, in display order
type Counts struct {
	Topic           string
	KnowledgeLevels []survey.Level
	Before          []float64
	After           []float64
	InterestLevels  []survey.Level
	Like            []float64
}

// Aggregator turns topics into percentage distributions
type Aggregator struct{}

// NewAggregator creates an aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes the knowledge-gain and interest distributions of a topic
func (a *Aggregator) Aggregate(topic survey.Topic) (survey.KnowledgeDistribution, survey.InterestDistribution, error) {
	counts, err := a.Count(topic)
	if err != nil {
		return survey.KnowledgeDistribution{}, survey.InterestDistribution{}, err
	}
	knowledge, interest := a.Distributions(counts)
	return knowledge, interest, nil
}

// Count tallies the votes per level for each role
func (a *Aggregator) Count(topic survey.Topic) (Counts, error) {
	switch topic.Mode {
	case survey.ModeResponses:
		return countResponses(topic), nil
	case survey.ModeTallies:
		return sumTallies(topic)
	default:
		return Counts{}, errors.InvalidInput(fmt.Sprintf("topic %s has unknown aggregation mode %q", topic.Name, topic.Mode))
	}
}

// Distributions normalizes counts into percentages; each row is scaled to sum to 100
func (a *Aggregator) Distributions(counts Counts) (survey.KnowledgeDistribution, survey.InterestDistribution) {
	knowledge := survey.KnowledgeDistribution{
		Topic:  counts.Topic,
		Levels: counts.KnowledgeLevels,
		Before: Normalize(counts.Before),
		After:  Normalize(counts.After),
	}
	interest := survey.InterestDistribution{
		Topic:   counts.Topic,
		Levels:  counts.InterestLevels,
		Percent: Normalize(counts.Like),
	}
	return knowledge, interest
}

// Normalize returns row scaled so it sums to 100. A zero total yields NaN entries.
func Normalize(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)

	total, err := stats.Sum(out)
	if err != nil {
		return out
	}
	floats.Scale(100/total, out)
	return out
}

// countResponses counts each ordinal code given in the role columns
func countResponses(topic survey.Topic) Counts {
	before := countCodes(topic, survey.RoleBefore)
	after := countCodes(topic, survey.RoleAfter)
	like := countCodes(topic, survey.RoleLike)

	knowledgeCodes := sortedCodes(before, after)
	interestCodes := sortedCodes(like)

	counts := Counts{Topic: topic.Name}
	for _, code := range knowledgeCodes {
		counts.KnowledgeLevels = append(counts.KnowledgeLevels, topic.KnowledgeScale.Level(code))
		counts.Before = append(counts.Before, float64(before[code]))
		counts.After = append(counts.After, float64(after[code]))
	}
	for _, code := range interestCodes {
		counts.InterestLevels = append(counts.InterestLevels, topic.InterestScale.Level(code))
		counts.Like = append(counts.Like, float64(like[code]))
	}
	return counts
}

func countCodes(topic survey.Topic, role survey.Role) map[int]int {
	counts := make(map[int]int)
	for _, col := range topic.Columns[role] {
		for row := range topic.Table.Rows {
			cell := topic.Table.Cell(row, col)
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsInf(value, 0) || value != math.Trunc(value) {
				log.Printf("[Aggregator] %s: ignoring non-integer %s answer %q", topic.Name, role, cell)
				continue
			}
			counts[int(value)]++
		}
	}
	return counts
}

func sortedCodes(sets ...map[int]int) []int {
	seen := make(map[int]bool)
	var codes []int
	for _, set := range sets {
		for code := range set {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	sort.Ints(codes)
	return codes
}

// sumTallies adds up each level column over all respondents
func sumTallies(topic survey.Topic) (Counts, error) {
	counts := Counts{Topic: topic.Name}

	var err error
	if counts.Before, err = sumColumns(topic, survey.RoleBefore); err != nil {
		return Counts{}, err
	}
	if counts.After, err = sumColumns(topic, survey.RoleAfter); err != nil {
		return Counts{}, err
	}
	if counts.Like, err = sumColumns(topic, survey.RoleLike); err != nil {
		return Counts{}, err
	}

	for i := range counts.Before {
		counts.KnowledgeLevels = append(counts.KnowledgeLevels, topic.KnowledgeScale.Level(i+1))
	}
	for i := range counts.Like {
		counts.InterestLevels = append(counts.InterestLevels, topic.InterestScale.Level(i+1))
	}

	if topic.ReverseInterest {
		slices.Reverse(counts.InterestLevels)
		slices.Reverse(counts.Like)
	}
	return counts, nil
}

func sumColumns(topic survey.Topic, role survey.Role) ([]float64, error) {
	cols := topic.Columns[role]
	sums := make([]float64, len(cols))
	for i, col := range cols {
		for row := range topic.Table.Rows {
			cell := topic.Table.Cell(row, col)
			if cell == "" {
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.InvalidInput(fmt.Sprintf("topic %s: %s tally %q in row %d is not a number", topic.Name, role, cell, row+1))
			}
			sums[i] += value
		}
	}
	return sums, nil
}
