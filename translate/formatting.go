package translate

import (
	"fmt"
	"strings"
)

// FormatSimpleText serializes a schema to the canonical simple notation.
// The output is deterministic and re-parses to the same model, so
// normalizing already-canonical text is a no-op.
func FormatSimpleText(schema *Schema) string {
	var sb strings.Builder

	for _, line := range schema.Prelude {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(schema.Prelude) > 0 && len(schema.Tables) > 0 {
		sb.WriteString("\n")
	}

	for i, table := range schema.Tables {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Table: %s\n", table.Name))

		for _, col := range table.Columns {
			line := fmt.Sprintf("  - %s: %s", col.Name, col.Type)
			if len(col.Constraints) > 0 {
				line += fmt.Sprintf(" (%s)", strings.Join(col.Constraints, ", "))
			}
			sb.WriteString(strings.TrimRight(line, " "))
			sb.WriteString("\n")
		}

		for _, note := range table.Notes {
			sb.WriteString(note)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FormatCreateSQL serializes a schema as SQL CREATE statements. Foreign key
// constraints are omitted since the model carries no reference targets.
func FormatCreateSQL(schema *Schema) string {
	var sb strings.Builder

	for _, table := range schema.Tables {
		sb.WriteString(fmt.Sprintf("create table %s (\n", table.Name))

		var columnDefs []string
		var primaryKeys []string

		for _, col := range table.Columns {
			var colDef strings.Builder
			colDef.WriteString("    " + col.Name)
			if col.Type != "" {
				colDef.WriteString(" " + strings.ToLower(col.Type))
			}

			for _, constraint := range col.Constraints {
				switch constraint {
				case "NOT NULL":
					colDef.WriteString(" not null")
				case "UNIQUE":
					colDef.WriteString(" unique")
				case "PRIMARY KEY":
					primaryKeys = append(primaryKeys, col.Name)
				}
			}

			columnDefs = append(columnDefs, colDef.String())
		}

		sb.WriteString(strings.Join(columnDefs, ",\n"))

		if len(primaryKeys) > 0 {
			sb.WriteString(fmt.Sprintf(",\n    primary key (%s)", strings.Join(primaryKeys, ", ")))
		}

		sb.WriteString("\n);\n\n")
	}

	return sb.String()
}
