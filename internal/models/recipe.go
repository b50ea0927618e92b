package models

// Value is a single cell of the source table.
type Value struct {
	Text     string
	Number   float64
	IsNumber bool
	Null     bool
}

type Row map[string]Value

type Table struct {
	Columns []string
	Rows    []Row
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns every value of the named column in row order.
func (t *Table) Column(name string) []Value {
	values := make([]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[name])
	}
	return values
}

// TagColumnSet keeps tag column names in header order.
type TagColumnSet struct {
	Names []string
	index map[string]struct{}
}

func NewTagColumnSet(names []string) TagColumnSet {
	set := TagColumnSet{
		Names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, name := range names {
		if _, ok := set.index[name]; ok {
			continue
		}
		set.index[name] = struct{}{}
		set.Names = append(set.Names, name)
	}
	return set
}

func (s TagColumnSet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s TagColumnSet) Len() int {
	return len(s.Names)
}

type Recipe struct {
	Title    string
	Tags     []string
	Calories *float64
	Protein  *float64
	Sodium   *float64
}

// ExportRecord field order is the key order of the written document.
type ExportRecord struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Tags     []string `json:"tags"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Sodium   *float64 `json:"sodium"`
}
