package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := " title ,calories, protein,sodium ,vegan\n" +
		"Soup,120,4,300,1\n" +
		"\"Salad, Green\",,NaN,10.5,0\n"

	table, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"title", "calories", "protein", "sodium", "vegan"}, table.Columns)
	require.Equal(t, 2, table.Len())

	soup := table.Rows[0]
	assert.Equal(t, "Soup", soup["title"].Text)
	assert.False(t, soup["title"].IsNumber)
	assert.True(t, soup["calories"].IsNumber)
	assert.Equal(t, 120.0, soup["calories"].Number)
	assert.Equal(t, 1.0, soup["vegan"].Number)

	salad := table.Rows[1]
	assert.Equal(t, "Salad, Green", salad["title"].Text)
	assert.True(t, salad["calories"].Null)
	assert.True(t, salad["protein"].Null)
	assert.Equal(t, 10.5, salad["sodium"].Number)
}

func TestParseKeepsCellText(t *testing.T) {
	input := "title,calories\n\" Soup \", 120 \n"

	table, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)

	row := table.Rows[0]
	assert.Equal(t, " Soup ", row["title"].Text)
	assert.Equal(t, " 120 ", row["calories"].Text)
	assert.True(t, row["calories"].IsNumber)
	assert.Equal(t, 120.0, row["calories"].Number)
}

func TestParseStripsBOM(t *testing.T) {
	input := "\xEF\xBB\xBFtitle,vegan\nSoup,1\n"

	table, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "vegan"}, table.Columns)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"empty input", "", 0},
		{"ragged row", "title,vegan\nSoup,1\nStew,1,0\n", 3},
		{"short row", "title,vegan\nSoup\n", 2},
		{"duplicate column after trim", "title, vegan,vegan \nSoup,1,1\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Parse(strings.NewReader(tt.input))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError, got %T", err)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestNullTokens(t *testing.T) {
	l := New()
	for _, tok := range []string{"", "NA", "NaN", "nan", "null", "None", "<NA>"} {
		assert.True(t, l.parseValue(tok).Null, "token %q", tok)
	}
	for _, tok := range []string{"0", "1", "abc", "0.0", "  ", " NA "} {
		assert.False(t, l.parseValue(tok).Null, "token %q", tok)
	}

	custom := NewWithConfig(LoaderConfig{NullTokens: []string{"-"}})
	assert.True(t, custom.parseValue("-").Null)
	assert.False(t, custom.parseValue("NA").Null)
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "recipes.csv")
	err := os.WriteFile(path, []byte("title;vegan\nSoup;1\n"), 0644)
	require.NoError(t, err)

	table, err := NewWithConfig(LoaderConfig{Comma: ';'}).Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())

	_, err = New().Load(filepath.Join(tmpDir, "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
