package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"placement/pkg/question/service"
)

func TestLoadJSON_Document(t *testing.T) {
	items, err := LoadJSON(strings.NewReader(`{"questions":[{"question":"q1","company":"A"},{"question":"q2","company":["B","C"]}]}`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, service.StringList{"B", "C"}, items[1].Company)
}

func TestLoadJSON_BareArray(t *testing.T) {
	items, err := LoadJSON(strings.NewReader("\n  [{\"question\":\"q1\"}]"))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "q1", items[0].Question)
}

func TestLoadJSON_Invalid(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`{"questions": 5}`))
	assert.Error(t, err)
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Question", "Options", "Correct Answer", "Has Options", "Category", "Company", "Image"},
		{"What is 2+2?", "3 | 4 | 5", "4", "", "Aptitude", "Google, TCS", ""},
		{},
		{"Define a heap.", "", "A tree-based structure", "false", "DSA", "Amazon", "https://img/heap.png"},
	})

	items, err := LoadFile(path, "")
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "What is 2+2?", first.Question)
	assert.Equal(t, []string{"3", "4", "5"}, first.Options)
	require.NotNil(t, first.HasOptions)
	assert.True(t, *first.HasOptions, "inferred from options")
	assert.Equal(t, service.StringList{"Google", "TCS"}, first.Company)
	assert.Empty(t, first.Images)

	second := items[1]
	require.NotNil(t, second.HasOptions)
	assert.False(t, *second.HasOptions)
	assert.Equal(t, "DSA", second.Category)
	assert.Equal(t, service.StringList{"https://img/heap.png"}, second.Images)
}

func TestLoadXLSX_MissingColumns(t *testing.T) {
	path := writeWorkbook(t, [][]any{{"Question", "Category"}, {"q", "dsa"}})
	_, err := LoadXLSX(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte("question\n"), 0o644))
	_, err := LoadFile(path, "")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
