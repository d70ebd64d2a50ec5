package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// KnowledgeLegend is the scale legend the survey template appends to the BEFORE question
const KnowledgeLegend = "1 = Nothing\n2 = A little\n3 = Some\n4 = A lot"

// BeforeHeader is the BEFORE question for topic, optionally followed by the scale legend
func BeforeHeader(topic string, withLegend bool) string {
	header := fmt.Sprintf("How much did you know about %s BEFORE the lesson?", topic)
	if withLegend {
		header += "\n" + KnowledgeLegend
	}
	return header
}

// AfterHeader is the AFTER question for topic
func AfterHeader(topic string) string {
	return fmt.Sprintf("How much did you know about %s AFTER the lesson?", topic)
}

// LikeHeader is the interest question for topic
func LikeHeader(topic string) string {
	return fmt.Sprintf("How much did you LIKE %s", topic)
}

// ResponsesFixture is one topic of a CSV export, one code per respondent and question
type ResponsesFixture struct {
	Topic  string
	Before []int
	After  []int
	Like   []int
	// OmitAfter and OmitLike drop the question from the export.
	OmitAfter bool
	OmitLike  bool
}

// BirdsFixture is the worked CSV example: one topic, four respondents
func BirdsFixture() ResponsesFixture {
	return ResponsesFixture{
		Topic:  "Birds",
		Before: []int{1, 2, 2, 3},
		After:  []int{3, 4, 4, 4},
		Like:   []int{2, 3, 3, 2},
	}
}

type column struct {
	header string
	values []int
}

// ResponsesTable lays fixtures out side by side as a CSV export would, with a leading
// timestamp column that belongs to no topic. The first topic carries the scale legend.
func ResponsesTable(fixtures ...ResponsesFixture) [][]string {
	columns := []column{{header: "Timestamp"}}
	respondents := 0
	for i, fx := range fixtures {
		columns = append(columns, column{header: BeforeHeader(fx.Topic, i == 0), values: fx.Before})
		if !fx.OmitAfter {
			columns = append(columns, column{header: AfterHeader(fx.Topic), values: fx.After})
		}
		if !fx.OmitLike {
			columns = append(columns, column{header: LikeHeader(fx.Topic), values: fx.Like})
		}
		for _, n := range []int{len(fx.Before), len(fx.After), len(fx.Like)} {
			if n > respondents {
				respondents = n
			}
		}
	}

	rows := make([][]string, respondents+1)
	for _, col := range columns {
		rows[0] = append(rows[0], col.header)
	}
	for r := 0; r < respondents; r++ {
		row := make([]string, len(columns))
		row[0] = fmt.Sprintf("2024-05-%02d", r%28+1)
		for c := 1; c < len(columns); c++ {
			if r < len(columns[c].values) {
				row[c] = strconv.Itoa(columns[c].values[r])
			}
		}
		rows[r+1] = row
	}
	return rows
}

// WriteResponsesCSV writes fixtures as a CSV export to path
func WriteResponsesCSV(path string, fixtures ...ResponsesFixture) error {
	return WriteCSV(path, ResponsesTable(fixtures...))
}

// WriteCSV writes rows to path
func WriteCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return file.Close()
}

// TallySheet is one topic sheet of a tally workbook
type TallySheet struct {
	Name   string
	Topic  string
	Labels []string    // row 2
	Rows   [][]float64 // rows 3+, column 1 is the respondent number
	// BlankZeros leaves zero tallies as empty cells.
	BlankZeros bool
	// Empty writes no cells at all.
	Empty bool
}

// TreesSheet is the worked spreadsheet example: before tallies sum to [2,1,0], after to
// [0,1,2] and like to [1,1,1]
func TreesSheet() TallySheet {
	return TallySheet{
		Name:   "Trees",
		Topic:  "Trees",
		Labels: []string{"Respondent", "Nothing", "Some", "A lot", "Nothing", "Some", "A lot", "Dislike", "Like", "Love"},
		Rows: [][]float64{
			{1, 1, 0, 0, 0, 0, 1, 1, 0, 0},
			{2, 1, 0, 0, 0, 1, 0, 0, 1, 0},
			{3, 0, 1, 0, 0, 0, 1, 0, 0, 1},
		},
		BlankZeros: true,
	}
}

// WriteTallyWorkbook writes sheets, in order, to an xlsx file at path
func WriteTallyWorkbook(path string, sheets ...TallySheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}
		if sheet.Empty {
			continue
		}

		if err := f.SetCellValue(sheet.Name, "A1", sheet.Topic); err != nil {
			return err
		}
		labels := make([]interface{}, len(sheet.Labels))
		for j, label := range sheet.Labels {
			labels[j] = label
		}
		if err := f.SetSheetRow(sheet.Name, "A2", &labels); err != nil {
			return err
		}
		for r, values := range sheet.Rows {
			row := make([]interface{}, len(values))
			for j, v := range values {
				if v == 0 && sheet.BlankZeros {
					row[j] = nil
					continue
				}
				row[j] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, r+3)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
