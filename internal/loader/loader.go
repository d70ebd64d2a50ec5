package loader

import (
	"fmt"
	"log"

	"github.com/marshallyale/go-outdoors-learning/adapters/excel"
	"github.com/marshallyale/go-outdoors-learning/domain/survey"
	"github.com/marshallyale/go-outdoors-learning/internal/errors"
	"github.com/marshallyale/go-outdoors-learning/ports"
)

// Options selects how columns are resolved for each input format
type Options struct {
	Layout          excel.SheetLayout
	ScaleFromHeader bool
}

// DefaultOptions resolves spreadsheets with the default layout and keeps the default scales
func DefaultOptions() Options {
	return Options{Layout: excel.DefaultSheetLayout()}
}

// Loader reads an input file into topics
type Loader struct {
	options Options
}

// NewLoader creates a loader
func NewLoader(options Options) *Loader {
	return &Loader{options: options}
}

// ResolverFor returns the column resolution strategy for a reader file type
func (l *Loader) ResolverFor(fileType string) (ports.ColumnResolverPort, error) {
	switch fileType {
	case excel.FileTypeCSV:
		return NewHeaderResolver(l.options.ScaleFromHeader), nil
	case excel.FileTypeXLSX:
		return NewRangeResolver(l.options.Layout), nil
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("no column resolver for file type %q", fileType))
	}
}

// Load reads path and resolves its topics. A validation failure returns no topics at all.
func (l *Loader) Load(path string) ([]survey.Topic, error) {
	reader := excel.NewDataReader(path)
	resolver, err := l.ResolverFor(reader.FileType())
	if err != nil {
		return nil, err
	}

	workbook, err := reader.ReadWorkbook()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	topics, err := resolver.Resolve(workbook.Sheets)
	if err != nil {
		return nil, err
	}

	log.Printf("[Loader] %d topics loaded from %s", len(topics), path)
	return topics, nil
}
