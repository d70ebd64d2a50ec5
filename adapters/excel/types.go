package excel

import "github.com/marshallyale/go-outdoors-learning/domain/survey"

// Workbook represents the complete input file
type Workbook struct {
	Path     string
	FileType string // "xlsx" or "csv"
	Sheets   []survey.Sheet
}
