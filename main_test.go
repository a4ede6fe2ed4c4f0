package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askql/askql/translate"
)

func TestAnswerQuestion(t *testing.T) {
	ctx := context.Background()

	t.Run("simple_notation_passes_through", func(t *testing.T) {
		mockTranslator := &MockTranslator{}
		schemaText := "Table: employees\n  - id: INTEGER"

		_, ok := answerQuestion(ctx, "count employees", schemaText, mockTranslator, false)
		require.True(t, ok)
		assert.True(t, mockTranslator.GenerateCalled)
		assert.False(t, mockTranslator.GenerateWithRemoteCalled)
		assert.Equal(t, schemaText, mockTranslator.SeenSchemaText)
	})

	t.Run("ddl_input_normalized_before_translation", func(t *testing.T) {
		mockTranslator := &MockTranslator{}
		ddl := "CREATE TABLE users (\n  id INTEGER PRIMARY KEY,\n  email TEXT NOT NULL\n);"

		_, ok := answerQuestion(ctx, "count users", ddl, mockTranslator, false)
		require.True(t, ok)
		assert.Contains(t, mockTranslator.SeenSchemaText, "Table: users")
		assert.Contains(t, mockTranslator.SeenSchemaText, "  - id: INTEGER (PRIMARY KEY)")
		assert.NotContains(t, mockTranslator.SeenSchemaText, "CREATE TABLE")
	})

	t.Run("remote_flag_routes_to_remote_path", func(t *testing.T) {
		mockTranslator := &MockTranslator{}

		_, _ = answerQuestion(ctx, "q", "Table: t\n  - id: INTEGER", mockTranslator, true)
		assert.True(t, mockTranslator.GenerateWithRemoteCalled)
		assert.False(t, mockTranslator.GenerateCalled)
	})

	t.Run("translator_failure_propagates", func(t *testing.T) {
		mockTranslator := &MockTranslator{
			GenerateFunc: func(ctx context.Context, question, schemaText string) (string, bool) {
				return translate.EmptySchemaMessage, false
			},
		}

		msg, ok := answerQuestion(ctx, "q", "", mockTranslator, false)
		assert.False(t, ok)
		assert.Equal(t, translate.EmptySchemaMessage, msg)
	})
}

func TestAnswerQuestionEndToEnd(t *testing.T) {
	engine := translate.NewEngine(nil)
	ctx := context.Background()

	t.Run("ddl_schema_rule_answer", func(t *testing.T) {
		ddl := `CREATE TABLE employees (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  department TEXT,
  salary INTEGER
);`

		sql, ok := answerQuestion(ctx, "average salary by department", ddl, engine, false)
		require.True(t, ok)
		assert.Equal(t, "SELECT department, AVG(salary) as avg_salary FROM employees GROUP BY department;", sql)
	})

	t.Run("no_schema_gives_guidance", func(t *testing.T) {
		sql, ok := answerQuestion(ctx, "anything", "", engine, false)
		assert.False(t, ok)
		assert.Equal(t, translate.EmptySchemaMessage, sql)
	})
}

func TestRunAgainstDemoStore(t *testing.T) {
	ctx := context.Background()
	schemaText := "Table: employees\n  - id: INTEGER\n  - department: TEXT"

	t.Run("setup_error", func(t *testing.T) {
		mockDB := &MockDatabaseManager{
			SetupFunc: func(ctx context.Context) error {
				return SimulateError("connection")
			},
		}

		err := runAgainstDemoStore(ctx, "q", schemaText, mockDB, &MockTranslator{}, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to setup database")
		assert.True(t, mockDB.SetupCalled)
		assert.False(t, mockDB.SeedCalled)
	})

	t.Run("seed_error_still_closes", func(t *testing.T) {
		mockDB := &MockDatabaseManager{
			SeedFunc: func() error {
				return fmt.Errorf("exec failed")
			},
		}

		err := runAgainstDemoStore(ctx, "q", schemaText, mockDB, &MockTranslator{}, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to seed demo data")
		assert.True(t, mockDB.CloseCalled)
	})

	t.Run("empty_schema_uses_store_description", func(t *testing.T) {
		mockDB := &MockDatabaseManager{
			DescribeSchemaFunc: func() (string, error) {
				return "Table: employees\n  - id: INTEGER", nil
			},
		}
		mockTranslator := &MockTranslator{}

		err := runAgainstDemoStore(ctx, "q", "   ", mockDB, mockTranslator, false)
		require.NoError(t, err)
		assert.True(t, mockDB.DescribeSchemaCalled)
		assert.Contains(t, mockTranslator.SeenSchemaText, "Table: employees")
	})

	t.Run("caller_schema_skips_description", func(t *testing.T) {
		mockDB := &MockDatabaseManager{}

		err := runAgainstDemoStore(ctx, "q", schemaText, mockDB, &MockTranslator{}, false)
		require.NoError(t, err)
		assert.False(t, mockDB.DescribeSchemaCalled)
	})

	t.Run("describe_error", func(t *testing.T) {
		mockDB := &MockDatabaseManager{
			DescribeSchemaFunc: func() (string, error) {
				return "", fmt.Errorf("introspection failed")
			},
		}

		err := runAgainstDemoStore(ctx, "q", "", mockDB, &MockTranslator{}, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to describe schema")
	})

	t.Run("generation_failure", func(t *testing.T) {
		mockDB := &MockDatabaseManager{}
		mockTranslator := &MockTranslator{
			GenerateFunc: func(ctx context.Context, question, schemaText string) (string, bool) {
				return translate.RemoteUnavailableMessage, false
			},
		}

		err := runAgainstDemoStore(ctx, "q", schemaText, mockDB, mockTranslator, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate sql")
		assert.False(t, mockDB.ExecuteQueryCalled)
	})

	t.Run("execution_failure_surfaces_message", func(t *testing.T) {
		mockDB := &MockDatabaseManager{
			ExecuteQueryFunc: func(query string) (*QueryResult, bool, string) {
				return nil, false, "Error executing query: relation does not exist"
			},
		}

		err := runAgainstDemoStore(ctx, "q", schemaText, mockDB, &MockTranslator{}, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "relation does not exist")
	})

	t.Run("successful_run_executes_generated_sql", func(t *testing.T) {
		mockDB := &MockDatabaseManager{
			ExecuteQueryFunc: func(query string) (*QueryResult, bool, string) {
				return &QueryResult{
					Columns: []string{"total_count"},
					Rows:    [][]string{{"8"}},
				}, true, "Query executed successfully"
			},
		}
		mockTranslator := &MockTranslator{
			GenerateFunc: func(ctx context.Context, question, schemaText string) (string, bool) {
				return "SELECT COUNT(*) as total_count FROM employees;", true
			},
		}

		err := runAgainstDemoStore(ctx, "count employees", schemaText, mockDB, mockTranslator, false)
		require.NoError(t, err)
		assert.True(t, mockDB.SetupCalled)
		assert.True(t, mockDB.SeedCalled)
		assert.True(t, mockDB.CloseCalled)
		assert.Equal(t, "SELECT COUNT(*) as total_count FROM employees;", mockDB.ExecutedQuery)
	})
}

func TestRenderResult(t *testing.T) {
	result := &QueryResult{
		Columns: []string{"id", "name"},
		Rows:    [][]string{{"1", "John Doe"}, {"2", "Jane Smith"}},
	}

	output := renderResult(result)
	assert.Contains(t, output, "id")
	assert.Contains(t, output, "name")
	assert.Contains(t, output, "John Doe")
	assert.Contains(t, output, "Jane Smith")
}

func TestRun(t *testing.T) {
	t.Run("run_function_help", func(t *testing.T) {
		resetCommand()
		cmd := rootCmd
		cmd.SetArgs([]string{"--help"})
		err := cmd.Execute()
		t.Logf("help command result: %v", err)
	})

	t.Run("run_function_no_args", func(t *testing.T) {
		resetCommand()
		cmd := rootCmd
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		assert.Error(t, err)
	})
}

func resetCommand() {
	schemaFile = ""
	previewMode = false
	exportMode = false
	remoteMode = false
	executeMode = false
	mcpMode = false
	rootCmd.ResetFlags()
	rootCmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "Path to a schema description file (simple notation or DDL)")
	rootCmd.Flags().BoolVarP(&previewMode, "preview", "p", false, "Print the canonical schema notation and exit")
	rootCmd.Flags().BoolVarP(&exportMode, "export", "e", false, "Export the schema as SQL CREATE statements and exit")
	rootCmd.Flags().BoolVarP(&remoteMode, "remote", "r", false, "Try remote generation models before the rule cascade")
	rootCmd.Flags().BoolVarP(&executeMode, "execute", "x", false, "Execute the generated SQL against a seeded demo store")
	rootCmd.Flags().BoolVar(&mcpMode, "mcp", false, "Run as Model Context Protocol server")
}

func isDockerAvailable() bool {
	return true
}
