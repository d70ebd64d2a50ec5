package survey

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Level is one point of an ordinal scale
type Level struct {
	Code  int    `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

// OrdinalScale maps survey response codes to labels
type OrdinalScale []Level

// DefaultKnowledgeScale is the 4-point knowledge scale of the survey template
func DefaultKnowledgeScale() OrdinalScale {
	return OrdinalScale{
		{Code: 1, Label: "Nothing"},
		{Code: 2, Label: "A little"},
		{Code: 3, Label: "Some"},
		{Code: 4, Label: "A lot"},
	}
}

// DefaultInterestScale is the 3-point interest scale of the survey template
func DefaultInterestScale() OrdinalScale {
	return OrdinalScale{
		{Code: 1, Label: "Dislike"},
		{Code: 2, Label: "Like"},
		{Code: 3, Label: "Love"},
	}
}

// Label returns the label for code; codes outside the scale are labelled with the number itself
func (s OrdinalScale) Label(code int) string {
	for _, l := range s {
		if l.Code == code {
			return l.Label
		}
	}
	return strconv.Itoa(code)
}

// Level returns the level for code
func (s OrdinalScale) Level(code int) Level {
	return Level{Code: code, Label: s.Label(code)}
}

var legendRegex = regexp.MustCompile(`(?s)lesson\?\n(.*)`)

// ParseScaleLegend extracts a "1 = Nothing" style legend that follows "lesson?" and a line
// break in a column header.
func ParseScaleLegend(header string) (OrdinalScale, error) {
	match := legendRegex.FindStringSubmatch(header)
	if match == nil {
		return nil, fmt.Errorf("no scale legend in header")
	}

	var scale OrdinalScale
	for _, line := range strings.Split(match[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed legend line %q", line)
		}
		code, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("malformed legend code %q: %w", parts[0], err)
		}
		scale = append(scale, Level{Code: code, Label: strings.TrimSpace(parts[1])})
	}
	if len(scale) == 0 {
		return nil, fmt.Errorf("empty scale legend")
	}

	sort.Slice(scale, func(i, j int) bool { return scale[i].Code < scale[j].Code })
	return scale, nil
}
