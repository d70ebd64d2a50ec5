package survey

// Role is the semantic meaning of a survey column within a topic
type Role string

const (
	RoleBefore Role = "before"
	RoleAfter  Role = "after"
	RoleLike   Role = "like"
)

// Roles lists every role in the order the aggregator consumes them
var Roles = []Role{RoleBefore, RoleAfter, RoleLike}

// Mode tells the aggregator how cells of a role column are to be read
type Mode string

const (
	// ModeResponses means every cell holds one respondent's ordinal code.
	ModeResponses Mode = "responses"
	// ModeTallies means every column is one ordinal level and cells hold vote counts.
	ModeTallies Mode = "tallies"
)

// RawTable is one topic's slice of the input: one row per respondent
type RawTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Cell returns the cell at row/col, or "" when the row is shorter than the header
func (t RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Topic is a surveyed subject together with everything needed to aggregate it
type Topic struct {
	Name           string         `json:"name"`
	Table          RawTable       `json:"table"`
	Columns        map[Role][]int `json:"columns"` // column indices into Table per role, in level order for ModeTallies
	KnowledgeScale OrdinalScale   `json:"knowledge_scale"`
	InterestScale  OrdinalScale   `json:"interest_scale"`
	Mode           Mode           `json:"mode"`
	// ReverseInterest displays interest levels highest code first.
	ReverseInterest bool `json:"reverse_interest"`
}

// KnowledgeDistribution holds before/after percentages per knowledge level
type KnowledgeDistribution struct {
	Topic  string    `json:"topic"`
	Levels []Level   `json:"levels"` // ascending by code
	Before []float64 `json:"before"`
	After  []float64 `json:"after"`
}

// RowNames are the row labels of a knowledge distribution, in display order
var RowNames = []string{"Before", "After"}

// Rows returns the before and after rows in display order
func (d KnowledgeDistribution) Rows() [][]float64 {
	return [][]float64{d.Before, d.After}
}

// Labels returns the level labels in column order
func (d KnowledgeDistribution) Labels() []string {
	return levelLabels(d.Levels)
}

// InterestDistribution holds the percentage of respondents per interest level
type InterestDistribution struct {
	Topic   string    `json:"topic"`
	Levels  []Level   `json:"levels"`
	Percent []float64 `json:"percent"`
}

// Labels returns the level labels in row order
func (d InterestDistribution) Labels() []string {
	return levelLabels(d.Levels)
}

func levelLabels(levels []Level) []string {
	labels := make([]string, len(levels))
	for i, l := range levels {
		labels[i] = l.Label
	}
	return labels
}

// Sheet is one table of the input file, rows as read (row 0 is the header row)
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// Header returns the first row, or nil for an empty sheet
func (s Sheet) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// DataRows returns every row after the header
func (s Sheet) DataRows() [][]string {
	if len(s.Rows) < 2 {
		return nil
	}
	return s.Rows[1:]
}

// ChartFormat is the file format a topic's figure is written in
type ChartFormat string

const (
	FormatPDF ChartFormat = "pdf"
	FormatPNG ChartFormat = "png"
)

// FormatFor picks the output format for an aggregation mode: vector for CSV responses,
// raster for spreadsheet tallies
func FormatFor(mode Mode) ChartFormat {
	if mode == ModeTallies {
		return FormatPNG
	}
	return FormatPDF
}
