package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xhad/recipesample/internal/models"
)

// Missing-value tokens recognised by default, matching what pandas treats as NaN.
var defaultNullTokens = []string{
	"", "NA", "N/A", "n/a", "NaN", "nan", "-NaN", "-nan",
	"null", "NULL", "None", "#N/A", "#NA", "<NA>", "#N/A N/A",
	"1.#IND", "1.#QNAN", "-1.#IND", "-1.#QNAN",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type LoaderConfig struct {
	Comma      rune
	NullTokens []string
}

type Loader struct {
	config LoaderConfig
	nulls  map[string]struct{}
}

// ParseError reports a source table that cannot be read as a consistent CSV.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error on line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewWithConfig(config LoaderConfig) *Loader {
	if config.Comma == 0 {
		config.Comma = ','
	}
	if len(config.NullTokens) == 0 {
		config.NullTokens = defaultNullTokens
	}

	nulls := make(map[string]struct{}, len(config.NullTokens))
	for _, tok := range config.NullTokens {
		nulls[tok] = struct{}{}
	}

	return &Loader{
		config: config,
		nulls:  nulls,
	}
}

func New() *Loader {
	return NewWithConfig(LoaderConfig{})
}

func (l *Loader) Load(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return l.Parse(f)
}

func (l *Loader) Parse(r io.Reader) (*models.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = l.config.Comma
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Err: errors.New("missing header row")}
	}
	if err != nil {
		return nil, toParseError(err)
	}

	columns, err := normalizeHeader(header)
	if err != nil {
		return nil, err
	}

	table := &models.Table{Columns: columns}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, toParseError(err)
		}

		row := make(models.Row, len(columns))
		for i, col := range columns {
			row[col] = l.parseValue(rec[i])
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// parseValue keeps the raw cell text; only the numeric parse ignores
// surrounding whitespace.
func (l *Loader) parseValue(raw string) models.Value {
	if _, ok := l.nulls[raw]; ok {
		return models.Value{Text: raw, Null: true}
	}

	v := models.Value{Text: raw}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		v.Number = n
		v.IsNumber = true
	}
	return v
}

func normalizeHeader(header []string) ([]string, error) {
	columns := make([]string, 0, len(header))
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		name := strings.TrimSpace(h)
		if seen[name] {
			return nil, &ParseError{Line: 1, Err: fmt.Errorf("duplicate column %q", name)}
		}
		seen[name] = true
		columns = append(columns, name)
	}
	return columns, nil
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Err: err}
}
