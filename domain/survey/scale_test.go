package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScaleLegend(t *testing.T) {
	header := "How much did you know about Birds BEFORE the lesson?\n4 = A lot\n1 = Nothing\n2 = A little\n3 = Some"

	scale, err := ParseScaleLegend(header)
	require.NoError(t, err)
	assert.Equal(t, DefaultKnowledgeScale(), scale)
}

func TestParseScaleLegend_Failures(t *testing.T) {
	cases := map[string]string{
		"no legend":      "How much did you know about Birds BEFORE the lesson?",
		"malformed line": "How much did you know about Birds BEFORE the lesson?\n1 - Nothing",
		"bad code":       "How much did you know about Birds BEFORE the lesson?\none = Nothing",
		"empty legend":   "How much did you know about Birds BEFORE the lesson?\n\n",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseScaleLegend(header)
			assert.Error(t, err)
		})
	}
}

func TestOrdinalScale_Label(t *testing.T) {
	scale := DefaultInterestScale()
	assert.Equal(t, "Love", scale.Label(3))
	assert.Equal(t, "7", scale.Label(7))
	assert.Equal(t, Level{Code: 1, Label: "Dislike"}, scale.Level(1))
}

func TestRawTable_Cell(t *testing.T) {
	table := RawTable{Headers: []string{"a", "b"}, Rows: [][]string{{"1"}}}
	assert.Equal(t, "1", table.Cell(0, 0))
	assert.Equal(t, "", table.Cell(0, 1))
	assert.Equal(t, "", table.Cell(3, 0))
}
