package excel

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/marshallyale/go-outdoors-learning/internal/errors"
)

// ColumnRange is an inclusive, 1-based range of spreadsheet columns
type ColumnRange struct {
	First int `yaml:"first" validate:"min=1"`
	Last  int `yaml:"last" validate:"gtefield=First"`
}

// Width is the number of columns in the range
func (r ColumnRange) Width() int {
	return r.Last - r.First + 1
}

// Indices returns the 0-based column indices of the range
func (r ColumnRange) Indices() []int {
	indices := make([]int, 0, r.Width())
	for col := r.First; col <= r.Last; col++ {
		indices = append(indices, col-1)
	}
	return indices
}

// SheetLayout declares where a tally sheet keeps its topic, labels and votes.
// Rows and columns are 1-based, as shown in a spreadsheet.
type SheetLayout struct {
	TopicRow        int         `yaml:"topic_row" validate:"min=1,ltfield=DataStartRow"`
	TopicColumn     int         `yaml:"topic_column" validate:"min=1"`
	LabelRow        int         `yaml:"label_row" validate:"min=1"`
	DataStartRow    int         `yaml:"data_start_row" validate:"gtfield=LabelRow"`
	Before          ColumnRange `yaml:"before"`
	After           ColumnRange `yaml:"after"`
	Like            ColumnRange `yaml:"like"`
	ReverseInterest bool        `yaml:"reverse_interest"`
}

// DefaultSheetLayout is the layout of the outreach tally workbook
func DefaultSheetLayout() SheetLayout {
	return SheetLayout{
		TopicRow:        1,
		TopicColumn:     1,
		LabelRow:        2,
		DataStartRow:    3,
		Before:          ColumnRange{First: 2, Last: 4},
		After:           ColumnRange{First: 5, Last: 7},
		Like:            ColumnRange{First: 8, Last: 10},
		ReverseInterest: true,
	}
}

var layoutValidator = validator.New()

// Validate checks the layout's ranges
func (l SheetLayout) Validate() error {
	if err := layoutValidator.Struct(l); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "invalid sheet layout"))
	}
	if l.Before.Width() != l.After.Width() {
		return errors.ConfigInvalid(fmt.Sprintf("before range has %d columns but after range has %d", l.Before.Width(), l.After.Width()))
	}
	return nil
}

// LoadSheetLayout reads a YAML layout; fields it leaves out keep their default values
func LoadSheetLayout(path string) (SheetLayout, error) {
	layout := DefaultSheetLayout()

	data, err := os.ReadFile(path)
	if err != nil {
		return layout, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to read layout %s", path))
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&layout); err != nil && err != io.EOF {
		return layout, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to parse layout %s", path))
	}

	return layout, layout.Validate()
}
