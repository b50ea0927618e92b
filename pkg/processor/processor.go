package processor

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/xhad/recipesample/internal/models"
)

const (
	DefaultMinTags     = 5
	DefaultSampleSize  = 50
	DefaultSeed        = int64(42)
	DefaultTitleColumn = "title"
)

// DefaultRequiredFields are the nutrition columns every sampled recipe must carry.
var DefaultRequiredFields = []string{"calories", "protein", "sodium"}

type ProcessorConfig struct {
	TitleColumn    string
	MinTags        int
	RequiredFields []string
	SampleSize     int
	Seed           int64
	// AllowPartial samples every remaining row instead of failing when
	// fewer than SampleSize rows survive filtering.
	AllowPartial bool
}

// Stats counts the rows left after each step of the last Process call.
type Stats struct {
	Loaded       int
	Deduplicated int
	Tagged       int
	Complete     int
	Sampled      int
}

type Processor struct {
	config ProcessorConfig
	stats  Stats
}

// InsufficientDataError is returned when filtering leaves fewer rows than the sample needs.
type InsufficientDataError struct {
	Need int
	Have int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: need %d rows to sample, only %d passed filtering", e.Need, e.Have)
}

// FieldError reports a nutrition field holding a value that is not a finite number.
type FieldError struct {
	Title string
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("recipe %q: field %s is not a finite number: %q", e.Title, e.Field, e.Value)
}

// taggedRow is a deduplicated row together with its active tags.
type taggedRow struct {
	row  models.Row
	tags []string
}

func NewWithConfig(config ProcessorConfig) *Processor {
	if config.TitleColumn == "" {
		config.TitleColumn = DefaultTitleColumn
	}
	if config.MinTags == 0 {
		config.MinTags = DefaultMinTags
	}
	if len(config.RequiredFields) == 0 {
		config.RequiredFields = DefaultRequiredFields
	}
	if config.SampleSize < 1 {
		config.SampleSize = DefaultSampleSize
	}
	if config.Seed == 0 {
		config.Seed = DefaultSeed
	}

	return &Processor{
		config: config,
	}
}

func New() *Processor {
	return NewWithConfig(ProcessorConfig{})
}

func (p *Processor) Stats() Stats {
	return p.stats
}

// Process runs deduplication, tagging, both filters and the seeded sample,
// in that order, and returns the sampled recipes in sample order.
func (p *Processor) Process(t *models.Table, tags models.TagColumnSet) ([]models.Recipe, error) {
	p.stats = Stats{Loaded: t.Len()}

	rows := p.Deduplicate(t.Rows)
	p.stats.Deduplicated = len(rows)

	tagged := make([]taggedRow, 0, len(rows))
	for _, row := range rows {
		tagged = append(tagged, taggedRow{row: row, tags: ActiveTags(row, tags)})
	}

	tagged = p.filterByTagCount(tagged)
	p.stats.Tagged = len(tagged)

	tagged = p.filterByRequiredFields(tagged)
	p.stats.Complete = len(tagged)

	sampled, err := p.sample(tagged)
	if err != nil {
		return nil, err
	}
	p.stats.Sampled = len(sampled)

	recipes := make([]models.Recipe, 0, len(sampled))
	for _, tr := range sampled {
		recipe, err := p.toRecipe(tr)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	return recipes, nil
}

// Deduplicate keeps the first row seen for each exact title. Null titles
// count as one shared title.
func (p *Processor) Deduplicate(rows []models.Row) []models.Row {
	type key struct {
		text string
		null bool
	}

	seen := make(map[key]struct{}, len(rows))
	out := make([]models.Row, 0, len(rows))
	for _, row := range rows {
		v := row[p.config.TitleColumn]
		k := key{text: v.Text, null: v.Null}
		if v.Null {
			k.text = ""
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out
}

// ActiveTags lists the tag columns whose value in row is exactly 1.
func ActiveTags(row models.Row, tags models.TagColumnSet) []string {
	active := make([]string, 0)
	for _, name := range tags.Names {
		v := row[name]
		if !v.Null && v.IsNumber && v.Number == 1 {
			active = append(active, name)
		}
	}
	return active
}

func (p *Processor) filterByTagCount(rows []taggedRow) []taggedRow {
	var out []taggedRow
	for _, tr := range rows {
		if len(tr.tags) >= p.config.MinTags {
			out = append(out, tr)
		}
	}
	return out
}

func (p *Processor) filterByRequiredFields(rows []taggedRow) []taggedRow {
	var out []taggedRow
	for _, tr := range rows {
		if p.hasRequiredFields(tr.row) {
			out = append(out, tr)
		}
	}
	return out
}

func (p *Processor) hasRequiredFields(row models.Row) bool {
	for _, field := range p.config.RequiredFields {
		v, ok := row[field]
		if !ok || v.Null {
			return false
		}
	}
	return true
}

func (p *Processor) sample(rows []taggedRow) ([]taggedRow, error) {
	n := p.config.SampleSize
	if len(rows) < n {
		if !p.config.AllowPartial {
			return nil, &InsufficientDataError{Need: n, Have: len(rows)}
		}
		n = len(rows)
	}

	rng := rand.New(rand.NewSource(p.config.Seed))
	shuffled := append([]taggedRow(nil), rows...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	return shuffled[:n], nil
}

func (p *Processor) toRecipe(tr taggedRow) (models.Recipe, error) {
	recipe := models.Recipe{Tags: tr.tags}
	if title := tr.row[p.config.TitleColumn]; !title.Null {
		recipe.Title = title.Text
	}

	fields := []struct {
		name string
		dst  **float64
	}{
		{"calories", &recipe.Calories},
		{"protein", &recipe.Protein},
		{"sodium", &recipe.Sodium},
	}
	for _, f := range fields {
		v, ok := tr.row[f.name]
		if !ok || v.Null {
			continue
		}
		if !v.IsNumber || math.IsInf(v.Number, 0) || math.IsNaN(v.Number) {
			return models.Recipe{}, &FieldError{Title: recipe.Title, Field: f.name, Value: v.Text}
		}
		n := v.Number
		*f.dst = &n
	}

	return recipe, nil
}
