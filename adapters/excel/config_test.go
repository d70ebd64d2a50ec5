package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallyale/go-outdoors-learning/internal/errors"
)

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultSheetLayout(t *testing.T) {
	layout := DefaultSheetLayout()
	require.NoError(t, layout.Validate())
	assert.Equal(t, []int{1, 2, 3}, layout.Before.Indices())
	assert.Equal(t, []int{4, 5, 6}, layout.After.Indices())
	assert.Equal(t, []int{7, 8, 9}, layout.Like.Indices())
}

func TestLoadSheetLayout_PartialOverride(t *testing.T) {
	path := writeLayout(t, "like:\n  first: 8\n  last: 11\nreverse_interest: false\n")

	layout, err := LoadSheetLayout(path)
	require.NoError(t, err)
	assert.Equal(t, ColumnRange{First: 8, Last: 11}, layout.Like)
	assert.False(t, layout.ReverseInterest)
	assert.Equal(t, DefaultSheetLayout().Before, layout.Before)
}

func TestLoadSheetLayout_EmptyFileKeepsDefaults(t *testing.T) {
	layout, err := LoadSheetLayout(writeLayout(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultSheetLayout(), layout)
}

func TestLoadSheetLayout_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown field":    "befor:\n  first: 2\n",
		"reversed range":   "like:\n  first: 9\n  last: 8\n",
		"zero column":      "before:\n  first: 0\n  last: 2\n",
		"unequal widths":   "after:\n  first: 5\n  last: 8\n",
		"data above label": "data_start_row: 2\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadSheetLayout(writeLayout(t, content))
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestLoadSheetLayout_MissingFile(t *testing.T) {
	_, err := LoadSheetLayout(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
