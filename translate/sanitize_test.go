package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSQL(t *testing.T) {
	t.Run("fenced_and_prefixed", func(t *testing.T) {
		assert.Equal(t, "SELECT * FROM t;", CleanSQL("```sql\nSQL: SELECT * FROM t;\n```"))
	})

	t.Run("plain_fence", func(t *testing.T) {
		assert.Equal(t, "SELECT 1;", CleanSQL("```\nSELECT 1;\n```"))
	})

	t.Run("prose_prefix_stripped", func(t *testing.T) {
		assert.Equal(t, "SELECT name FROM users;", CleanSQL("Query: SELECT name FROM users;"))
		assert.Equal(t, "SELECT name FROM users;", CleanSQL("Answer: SELECT name FROM users;"))
	})

	t.Run("leading_prose_cut_at_first_keyword", func(t *testing.T) {
		raw := "Here is the query you asked for: SELECT id FROM employees WHERE age > 30;"
		assert.Equal(t, "SELECT id FROM employees WHERE age > 30;", CleanSQL(raw))
	})

	t.Run("whitespace_collapsed", func(t *testing.T) {
		raw := "SELECT id,\n       name\nFROM   users\nWHERE  id = 1;"
		assert.Equal(t, "SELECT id, name FROM users WHERE id = 1;", CleanSQL(raw))
	})

	t.Run("lowercase_sql_keeps_original_case", func(t *testing.T) {
		assert.Equal(t, "select * from t;", CleanSQL("select * from t;"))
	})

	t.Run("update_statement", func(t *testing.T) {
		assert.Equal(t, "UPDATE t SET x = 1;", CleanSQL("note: UPDATE t SET x = 1;"))
	})

	t.Run("no_keyword_passes_through", func(t *testing.T) {
		assert.Equal(t, "no sql here", CleanSQL("  no sql here  "))
	})

	t.Run("empty_input", func(t *testing.T) {
		assert.Equal(t, "", CleanSQL(""))
	})
}
