package loader

import (
	"log"
	"regexp"
	"strings"

	"github.com/marshallyale/go-outdoors-learning/domain/survey"
	"github.com/marshallyale/go-outdoors-learning/internal/errors"
)

var (
	topicRegex    = regexp.MustCompile(`How much did you know about (.*) BEFORE`)
	afterRegex    = regexp.MustCompile(`How much did you know about (.*) AFTER`)
	interestRegex = regexp.MustCompile(`How much did you LIKE (.*)`)
)

// HeaderResolver finds topics in the question text of a flat survey export.
// Every cell holds one respondent's ordinal answer.
type HeaderResolver struct {
	// ScaleFromHeader keeps a knowledge legend parsed from the first header. When false the
	// default scales always win, even after a successful parse.
	ScaleFromHeader bool
}

// NewHeaderResolver creates a header resolver
func NewHeaderResolver(scaleFromHeader bool) *HeaderResolver {
	return &HeaderResolver{ScaleFromHeader: scaleFromHeader}
}

// Resolve extracts and validates one topic per BEFORE question
func (r *HeaderResolver) Resolve(sheets []survey.Sheet) ([]survey.Topic, error) {
	var topics []survey.Topic
	for _, sheet := range sheets {
		tables := r.extractTables(sheet)

		// every topic is checked before any is returned
		for _, t := range tables {
			if err := validateQuestions(t.name, t.table.Headers); err != nil {
				log.Printf("[HeaderResolver] %v. Exiting.", err)
				return nil, err
			}
		}

		for _, t := range tables {
			topics = append(topics, r.buildTopic(t.name, t.table))
		}
	}
	return topics, nil
}

type namedTable struct {
	name  string
	table survey.RawTable
}

// extractTables selects, per discovered topic, every column whose header mentions it
func (r *HeaderResolver) extractTables(sheet survey.Sheet) []namedTable {
	headers := sheet.Header()

	var names []string
	seen := make(map[string]bool)
	for _, header := range headers {
		match := topicRegex.FindStringSubmatch(header)
		if match == nil || seen[match[1]] {
			continue
		}
		seen[match[1]] = true
		names = append(names, match[1])
	}

	data := sheet.DataRows()
	tables := make([]namedTable, 0, len(names))
	for _, name := range names {
		var cols []int
		for i, header := range headers {
			if strings.Contains(header, name) {
				cols = append(cols, i)
			}
		}

		table := survey.RawTable{Headers: make([]string, len(cols)), Rows: make([][]string, len(data))}
		for j, c := range cols {
			table.Headers[j] = headers[c]
		}
		for i, row := range data {
			projected := make([]string, len(cols))
			for j, c := range cols {
				if c < len(row) {
					projected[j] = row[c]
				}
			}
			table.Rows[i] = projected
		}
		tables = append(tables, namedTable{name: name, table: table})
	}
	return tables
}

func validateQuestions(topic string, headers []string) error {
	var hasAfter, hasInterest bool
	for _, header := range headers {
		hasAfter = hasAfter || afterRegex.MatchString(header)
		hasInterest = hasInterest || interestRegex.MatchString(header)
	}
	if !hasAfter {
		return errors.MissingQuestion(topic, "AFTER")
	}
	if !hasInterest {
		return errors.MissingQuestion(topic, "INTEREST")
	}
	return nil
}

func (r *HeaderResolver) buildTopic(name string, table survey.RawTable) survey.Topic {
	columns := make(map[survey.Role][]int)
	for i, header := range table.Headers {
		switch {
		case strings.Contains(header, "BEFORE"):
			columns[survey.RoleBefore] = append(columns[survey.RoleBefore], i)
		case strings.Contains(header, "AFTER"):
			columns[survey.RoleAfter] = append(columns[survey.RoleAfter], i)
		case strings.Contains(header, "LIKE"):
			columns[survey.RoleLike] = append(columns[survey.RoleLike], i)
		default:
			log.Printf("[HeaderResolver] Column not known. %s", header)
		}
	}

	knowledgeScale := survey.DefaultKnowledgeScale()
	parsed, err := survey.ParseScaleLegend(table.Headers[0])
	if err != nil {
		log.Printf("[HeaderResolver] Couldn't extract scale for %s (%v). Assuming 1-4 for learning, 1-3 for interest", name, err)
	} else if r.ScaleFromHeader {
		knowledgeScale = parsed
	}

	return survey.Topic{
		Name:           name,
		Table:          table,
		Columns:        columns,
		KnowledgeScale: knowledgeScale,
		InterestScale:  survey.DefaultInterestScale(),
		Mode:           survey.ModeResponses,
	}
}
