package translate

import "strings"

// Column represents a single column of a described table. Type is kept as
// free-form text (e.g. VARCHAR(50)); Constraints holds the detected
// constraint keywords in canonical order.
type Column struct {
	Name        string
	Type        string
	Constraints []string
}

// Table represents a described table with its columns in order of
// appearance. Notes holds unrecognized trailing lines so re-serialization
// can preserve them verbatim.
type Table struct {
	Name    string
	Columns []Column
	Notes   []string
}

// Schema is the structured model of a schema description. Tables are kept
// in order of first appearance; the first table is the main table used as
// the default target whenever a question does not name one. Prelude holds
// lines that appeared before any table declaration.
type Schema struct {
	Tables  []Table
	Prelude []string
}

// IsEmpty reports whether no tables were parsed.
func (s *Schema) IsEmpty() bool {
	return len(s.Tables) == 0
}

// MainTable returns the first table in parse order, or nil when the schema
// is empty.
func (s *Schema) MainTable() *Table {
	if len(s.Tables) == 0 {
		return nil
	}
	return &s.Tables[0]
}

// HasColumn reports whether the table has a column with the given name,
// compared case-insensitively.
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if strings.EqualFold(col.Name, name) {
			return true
		}
	}
	return false
}

// FirstTableWith returns the first table in parse order for which all of
// the given column names are present.
func (s *Schema) FirstTableWith(columns ...string) *Table {
	for i := range s.Tables {
		table := &s.Tables[i]
		found := true
		for _, name := range columns {
			if !table.HasColumn(name) {
				found = false
				break
			}
		}
		if found {
			return table
		}
	}
	return nil
}

// FirstTableNamedLike returns the first table whose name contains the given
// substring, compared case-insensitively.
func (s *Schema) FirstTableNamedLike(substr string) *Table {
	needle := strings.ToLower(substr)
	for i := range s.Tables {
		if strings.Contains(strings.ToLower(s.Tables[i].Name), needle) {
			return &s.Tables[i]
		}
	}
	return nil
}

// TableMentionedIn returns the first table whose name occurs in the given
// lower-cased question text.
func (s *Schema) TableMentionedIn(questionLower string) *Table {
	for i := range s.Tables {
		if strings.Contains(questionLower, strings.ToLower(s.Tables[i].Name)) {
			return &s.Tables[i]
		}
	}
	return nil
}
