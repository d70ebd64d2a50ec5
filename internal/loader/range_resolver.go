package loader

import (
	"log"
	"strconv"

	"github.com/marshallyale/go-outdoors-learning/adapters/excel"
	"github.com/marshallyale/go-outdoors-learning/domain/survey"
)

// RangeResolver reads tally sheets whose roles live at fixed column ranges
type RangeResolver struct {
	Layout excel.SheetLayout
}

// NewRangeResolver creates a range resolver for layout
func NewRangeResolver(layout excel.SheetLayout) *RangeResolver {
	return &RangeResolver{Layout: layout}
}

// Resolve turns every non-empty sheet into one topic. Sheets that end before the first
// data row are skipped.
func (r *RangeResolver) Resolve(sheets []survey.Sheet) ([]survey.Topic, error) {
	if err := r.Layout.Validate(); err != nil {
		return nil, err
	}

	var topics []survey.Topic
	for _, sheet := range sheets {
		if len(sheet.Rows) < r.Layout.DataStartRow {
			log.Printf("[RangeResolver] Skipping empty sheet %s", sheet.Name)
			continue
		}
		topics = append(topics, r.buildTopic(sheet))
	}
	return topics, nil
}

func (r *RangeResolver) buildTopic(sheet survey.Sheet) survey.Topic {
	l := r.Layout
	width := l.Like.Last
	for _, rng := range []excel.ColumnRange{l.Before, l.After} {
		if rng.Last > width {
			width = rng.Last
		}
	}
	for _, row := range sheet.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	name := cellAt(sheet.Rows, l.TopicRow-1, l.TopicColumn-1)
	if name == "" {
		log.Printf("[RangeResolver] Sheet %s has no topic in its header, using the sheet name", sheet.Name)
		name = sheet.Name
	}

	table := survey.RawTable{Headers: make([]string, width)}
	for c := range table.Headers {
		table.Headers[c] = cellAt(sheet.Rows, l.LabelRow-1, c)
	}
	for i := l.DataStartRow - 1; i < len(sheet.Rows); i++ {
		row := make([]string, width)
		for c := range row {
			if row[c] = cellAt(sheet.Rows, i, c); row[c] == "" {
				row[c] = "0"
			}
		}
		table.Rows = append(table.Rows, row)
	}

	columns := map[survey.Role][]int{
		survey.RoleBefore: l.Before.Indices(),
		survey.RoleAfter:  l.After.Indices(),
		survey.RoleLike:   l.Like.Indices(),
	}
	logUnknownColumns(name, table.Headers, columns, l.TopicColumn-1)

	return survey.Topic{
		Name:            name,
		Table:           table,
		Columns:         columns,
		KnowledgeScale:  scaleFromLabels(table.Headers, columns[survey.RoleBefore]),
		InterestScale:   scaleFromLabels(table.Headers, columns[survey.RoleLike]),
		Mode:            survey.ModeTallies,
		ReverseInterest: l.ReverseInterest,
	}
}

// scaleFromLabels numbers the range's columns 1..n and labels them from the label row
func scaleFromLabels(labels []string, cols []int) survey.OrdinalScale {
	scale := make(survey.OrdinalScale, len(cols))
	for i, c := range cols {
		label := ""
		if c < len(labels) {
			label = labels[c]
		}
		if label == "" {
			label = strconv.Itoa(i + 1)
		}
		scale[i] = survey.Level{Code: i + 1, Label: label}
	}
	return scale
}

func logUnknownColumns(topic string, labels []string, columns map[survey.Role][]int, topicColumn int) {
	known := map[int]bool{topicColumn: true}
	for _, cols := range columns {
		for _, c := range cols {
			known[c] = true
		}
	}
	for c, label := range labels {
		if !known[c] && label != "" {
			log.Printf("[RangeResolver] Column not known in %s. %s", topic, label)
		}
	}
}

func cellAt(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}
