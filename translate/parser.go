package translate

import (
	"regexp"
	"strings"
)

// Notation identifies which notation a schema description uses.
type Notation string

const (
	NotationSimple Notation = "simple" // Table: / "- column: type" notation
	NotationDDL    Notation = "ddl"    // SQL CREATE TABLE statements
)

// Constraint keywords detected by substring scan, in canonical order. This
// is deliberately not a grammar: a definition containing the literal text
// anywhere acquires the constraint.
var constraintKeywords = []string{
	"PRIMARY KEY",
	"NOT NULL",
	"FOREIGN KEY",
	"UNIQUE",
}

var (
	tableLineRe  = regexp.MustCompile(`^Table:\s*(.+?)\s*$`)
	columnLineRe = regexp.MustCompile(`^-\s*(.*)$`)
	typeTokenRe  = regexp.MustCompile(`^([A-Za-z]\w*(?:\(\d+(?:,\d+)?\))?)`)

	createTableRe = regexp.MustCompile("(?i)CREATE\\s+TABLE\\s+[`\"]?(\\w+)[`\"]?")
	ddlColumnRe   = regexp.MustCompile("(?i)^[`\"]?(\\w+)[`\"]?\\s+(\\w+(?:\\(\\d+(?:,\\d+)?\\))?)")
)

// DetectNotation reports whether the text looks like SQL DDL or the simple
// notation. Anything containing a CREATE TABLE statement is treated as DDL.
func DetectNotation(text string) Notation {
	if createTableRe.MatchString(text) {
		return NotationDDL
	}
	return NotationSimple
}

// Parse builds a Schema from text in either notation, picking the parser
// by detection.
func Parse(text string) *Schema {
	if DetectNotation(text) == NotationDDL {
		return ParseDDL(text)
	}
	return ParseFreeText(text)
}

// Normalize converts schema text in either notation to the canonical
// simple-notation form consumed by the translation engine.
func Normalize(text string) string {
	return FormatSimpleText(Parse(text))
}

// ParseFreeText builds a Schema from simple-notation text. The scan is
// line-oriented and forgiving: malformed input degrades to fewer structured
// columns, never an error. Lines that match neither shape are preserved
// verbatim so the canonical re-serialization does not lose them.
func ParseFreeText(text string) *Schema {
	schema := &Schema{}
	var current *Table

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := tableLineRe.FindStringSubmatch(line); m != nil {
			current = schema.openTable(m[1])
			continue
		}

		if m := columnLineRe.FindStringSubmatch(line); m != nil && current != nil {
			if col, ok := parseColumnDef(m[1]); ok {
				current.Columns = append(current.Columns, col)
				continue
			}
		}

		if current != nil {
			current.Notes = append(current.Notes, line)
		} else {
			schema.Prelude = append(schema.Prelude, line)
		}
	}

	return schema
}

// ParseDDL builds a Schema from CREATE TABLE text. Any line containing a
// parenthesis is skipped entirely; this discards the structural opening and
// closing lines but also drops column definitions whose type carries a size
// qualifier such as VARCHAR(50). The behavior is intentional-as-documented,
// see the known limitations notes.
func ParseDDL(text string) *Schema {
	schema := &Schema{}
	var current *Table

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		if m := createTableRe.FindStringSubmatch(line); m != nil {
			current = schema.openTable(m[1])
			continue
		}

		if current == nil {
			continue
		}
		if strings.ContainsAny(line, "()") {
			continue
		}

		if m := ddlColumnRe.FindStringSubmatch(line); m != nil {
			current.Columns = append(current.Columns, Column{
				Name:        m[1],
				Type:        strings.ToUpper(m[2]),
				Constraints: detectConstraints(line),
			})
		}
	}

	return schema
}

// openTable starts a new table or, when the name repeats, resets the
// existing one in place. Last declaration wins; the table keeps its
// original position in parse order.
func (s *Schema) openTable(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			s.Tables[i].Columns = nil
			s.Tables[i].Notes = nil
			return &s.Tables[i]
		}
	}
	s.Tables = append(s.Tables, Table{Name: name})
	return &s.Tables[len(s.Tables)-1]
}

// parseColumnDef splits a "- name: type (constraints)" body. Definitions
// without a colon are not structured columns and are left to the caller to
// preserve as-is.
func parseColumnDef(body string) (Column, bool) {
	name, rest, found := strings.Cut(body, ":")
	if !found {
		return Column{}, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Column{}, false
	}
	rest = strings.TrimSpace(rest)

	col := Column{Name: name, Constraints: detectConstraints(rest)}
	if m := typeTokenRe.FindStringSubmatch(rest); m != nil {
		col.Type = m[1]
	}
	return col, true
}

func detectConstraints(definition string) []string {
	upper := strings.ToUpper(definition)
	var constraints []string
	for _, keyword := range constraintKeywords {
		if strings.Contains(upper, keyword) {
			constraints = append(constraints, keyword)
		}
	}
	return constraints
}
