package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// demoSchema mirrors the seeded demonstration store: the main table is
// employees because it is declared first.
const demoSchemaText = `Table: employees
  - id: INTEGER (PRIMARY KEY)
  - name: VARCHAR(100) (NOT NULL)
  - department: VARCHAR(50)
  - salary: INTEGER
  - hire_date: DATE
  - age: INTEGER

Table: products
  - id: INTEGER (PRIMARY KEY)
  - name: VARCHAR(200) (NOT NULL)
  - category: VARCHAR(50)
  - price: DECIMAL(10,2)
  - stock_quantity: INTEGER

Table: sales
  - id: INTEGER (PRIMARY KEY)
  - product_id: INTEGER (FOREIGN KEY)
  - employee_id: INTEGER (FOREIGN KEY)
  - quantity: INTEGER
  - total_amount: DECIMAL(10,2)`

func demoSchema(t *testing.T) *Schema {
	t.Helper()
	schema := ParseFreeText(demoSchemaText)
	require.Len(t, schema.Tables, 3)
	return schema
}

func TestApplyRules(t *testing.T) {
	schema := demoSchema(t)

	t.Run("engineering_department", func(t *testing.T) {
		sql, ok := ApplyRules("Show me all employees in the Engineering department", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM employees WHERE department = 'Engineering';", sql)
	})

	t.Run("average_salary_grouped_when_department_present", func(t *testing.T) {
		sql, ok := ApplyRules("What is the average salary?", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT department, AVG(salary) as avg_salary FROM employees GROUP BY department;", sql)
	})

	t.Run("average_salary_ungrouped_without_department", func(t *testing.T) {
		s := ParseFreeText("Table: staff\n  - id: INTEGER\n  - salary: INTEGER")
		sql, ok := ApplyRules("what is the average salary", s)
		require.True(t, ok)
		assert.Equal(t, "SELECT AVG(salary) as average_salary FROM staff;", sql)
	})

	t.Run("top_by_price", func(t *testing.T) {
		sql, ok := ApplyRules("What are the top 5 products by price?", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM products ORDER BY price DESC LIMIT 5;", sql)
	})

	t.Run("highest_price_matches_too", func(t *testing.T) {
		sql, ok := ApplyRules("highest price items", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM products ORDER BY price DESC LIMIT 5;", sql)
	})

	t.Run("count_mentioned_table", func(t *testing.T) {
		sql, ok := ApplyRules("count the products", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT COUNT(*) as total_count FROM products;", sql)
	})

	t.Run("count_defaults_to_main_table", func(t *testing.T) {
		sql, ok := ApplyRules("count everything", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT COUNT(*) as total_count FROM employees;", sql)
	})

	t.Run("show_mentioned_table", func(t *testing.T) {
		sql, ok := ApplyRules("show me the sales", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM sales;", sql)
	})

	t.Run("show_without_table_mention_falls_through", func(t *testing.T) {
		sql, ok := ApplyRules("show me something interesting", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM employees LIMIT 10;", sql)
	})

	t.Run("low_stock", func(t *testing.T) {
		sql, ok := ApplyRules("which items have stock below the threshold", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM products WHERE stock_quantity < 50;", sql)
	})

	t.Run("sales_by_employee_join", func(t *testing.T) {
		sql, ok := ApplyRules("total sales per employee", schema)
		require.True(t, ok)
		assert.Equal(t,
			"SELECT e.name, SUM(s.total_amount) as total_sales FROM employees e JOIN sales s ON e.id = s.employee_id GROUP BY e.id, e.name;",
			sql)
	})

	t.Run("join_columns_not_validated_against_schema", func(t *testing.T) {
		// The join emits id/employee_id/name/total_amount even when the
		// matched tables declare none of them.
		s := ParseFreeText("Table: employees\n  - who: TEXT\n\nTable: sales\n  - what: TEXT")
		sql, ok := ApplyRules("sales per employee", s)
		require.True(t, ok)
		assert.Contains(t, sql, "JOIN sales s ON e.id = s.employee_id")
	})

	t.Run("electronics_category", func(t *testing.T) {
		sql, ok := ApplyRules("which items are electronics", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM products WHERE category = 'Electronics';", sql)
	})

	t.Run("hired_after", func(t *testing.T) {
		sql, ok := ApplyRules("who was hired after 2022", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM employees WHERE hire_date > '2022-01-01';", sql)
	})

	t.Run("default_select_catch_all", func(t *testing.T) {
		sql, ok := ApplyRules("tell me about the data", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM employees LIMIT 10;", sql)
	})

	t.Run("empty_schema_produces_nothing", func(t *testing.T) {
		sql, ok := ApplyRules("count everything", &Schema{})
		assert.False(t, ok)
		assert.Empty(t, sql)
	})
}

func TestRulePriority(t *testing.T) {
	schema := demoSchema(t)

	t.Run("engineering_beats_average_salary", func(t *testing.T) {
		sql, ok := ApplyRules("average salary in engineering", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT * FROM employees WHERE department = 'Engineering';", sql)
	})

	t.Run("count_beats_show", func(t *testing.T) {
		sql, ok := ApplyRules("show the count of products", schema)
		require.True(t, ok)
		assert.Equal(t, "SELECT COUNT(*) as total_count FROM products;", sql)
	})
}

func TestRuleTableNameCasePreserved(t *testing.T) {
	s := ParseFreeText("Table: Employees\n  - department: TEXT")
	sql, ok := ApplyRules("engineering staff", s)
	require.True(t, ok)
	assert.Equal(t, "SELECT * FROM Employees WHERE department = 'Engineering';", sql)
}
