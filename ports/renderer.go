package ports

import (
	"github.com/marshallyale/go-outdoors-learning/domain/survey"
)

// ChartRendererPort draws a topic's figure and writes it to a file
type ChartRendererPort interface {
	// Render returns the path of the written file
	Render(format survey.ChartFormat, knowledge survey.KnowledgeDistribution, interest survey.InterestDistribution) (string, error)
}
