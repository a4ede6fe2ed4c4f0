package translate

import (
	"fmt"
	"strings"
)

// GenerateTemplate emits a commented SQL skeleton keyed off broad question
// categories. It is the last tier of the cascade and always succeeds, even
// for an empty schema.
func GenerateTemplate(question string, schema *Schema) (string, bool) {
	if schema.IsEmpty() {
		return "-- No schema provided. Please define your database schema first.\n" +
			"-- Example:\n" +
			"-- SELECT * FROM your_table_name;", true
	}

	mainTable := schema.MainTable().Name
	q := strings.ToLower(question)

	switch {
	case anyOf(q, "count", "how many"):
		return fmt.Sprintf(`-- Count query template:
SELECT COUNT(*) as total_count
FROM %s;

-- To count specific conditions, add WHERE clause:
-- SELECT COUNT(*) FROM %s WHERE column_name = 'value';`, mainTable, mainTable), true

	case anyOf(q, "average", "avg", "mean"):
		return fmt.Sprintf(`-- Average calculation template:
SELECT AVG(numeric_column) as average_value
FROM %s;

-- To group by category:
-- SELECT category, AVG(numeric_column) FROM %s GROUP BY category;`, mainTable, mainTable), true

	case anyOf(q, "top", "highest", "best", "maximum"):
		return fmt.Sprintf(`-- Top records template:
SELECT *
FROM %s
ORDER BY column_name DESC
LIMIT 10;

-- Replace 'column_name' with the actual column you want to sort by`, mainTable), true

	case anyOf(q, "show", "list", "display", "get"):
		return fmt.Sprintf(`-- Show records template:
SELECT *
FROM %s;

-- To filter specific records:
-- SELECT * FROM %s WHERE column_name = 'value';`, mainTable, mainTable), true

	default:
		names := make([]string, len(schema.Tables))
		for i, t := range schema.Tables {
			names[i] = t.Name
		}
		return fmt.Sprintf(`-- Generic query template based on your question:
SELECT *
FROM %s
LIMIT 10;

-- Available tables: %s
-- Modify this query based on your specific needs`, mainTable, strings.Join(names, ", ")), true
	}
}
