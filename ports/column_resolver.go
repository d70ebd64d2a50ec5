package ports

import (
	"github.com/marshallyale/go-outdoors-learning/domain/survey"
)

// ColumnResolverPort turns the sheets of an input file into topics
type ColumnResolverPort interface {
	// Resolve returns topics in discovery order, or an error that aborts the whole run
	Resolve(sheets []survey.Sheet) ([]survey.Topic, error)
}
