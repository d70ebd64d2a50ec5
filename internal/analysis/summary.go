package analysis

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// KnowledgeSummary condenses a topic's before/after shift into a few numbers
type KnowledgeSummary struct {
	Topic      string
	MeanBefore float64 // mean reported level code
	MeanAfter  float64
	Gain       float64 // MeanAfter - MeanBefore
	ChiSquare  float64 // homogeneity of the before and after vote counts
	DF         int
	PValue     float64
}

// Summarize computes mean levels and a chi-square test of the before/after counts.
// Means are NaN for rows without votes; the test is skipped (p = 1) when it has no degrees
// of freedom.
func Summarize(counts Counts) KnowledgeSummary {
	codes := make([]float64, len(counts.KnowledgeLevels))
	for i, level := range counts.KnowledgeLevels {
		codes[i] = float64(level.Code)
	}

	summary := KnowledgeSummary{
		Topic:      counts.Topic,
		MeanBefore: weightedMean(codes, counts.Before),
		MeanAfter:  weightedMean(codes, counts.After),
		PValue:     1,
	}
	summary.Gain = summary.MeanAfter - summary.MeanBefore
	summary.ChiSquare, summary.DF = chiSquare(counts.Before, counts.After)
	if summary.DF > 0 {
		summary.PValue = 1 - distuv.ChiSquared{K: float64(summary.DF)}.CDF(summary.ChiSquare)
	}
	return summary
}

func weightedMean(values, weights []float64) float64 {
	total, err := stats.Sum(weights)
	if err != nil || total == 0 {
		return math.NaN()
	}
	return floats.Dot(values, weights) / total
}

// chiSquare tests a 2xK table, dropping levels nobody chose
func chiSquare(before, after []float64) (float64, int) {
	beforeTotal, _ := stats.Sum(before)
	afterTotal, _ := stats.Sum(after)
	grand := beforeTotal + afterTotal
	if beforeTotal == 0 || afterTotal == 0 {
		return 0, 0
	}

	chi := 0.0
	levels := 0
	for i := range before {
		levelTotal := before[i] + after[i]
		if levelTotal == 0 {
			continue
		}
		levels++
		for _, cell := range []struct{ observed, rowTotal float64 }{{before[i], beforeTotal}, {after[i], afterTotal}} {
			expected := cell.rowTotal * levelTotal / grand
			chi += (cell.observed - expected) * (cell.observed - expected) / expected
		}
	}
	if levels < 2 {
		return chi, 0
	}
	return chi, levels - 1
}
