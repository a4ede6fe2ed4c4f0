package main

import (
	"context"
	"fmt"
)

// MockDatabaseManager is a mock implementation of DatabaseManager for testing
type MockDatabaseManager struct {
	SetupFunc          func(ctx context.Context) error
	CloseFunc          func(ctx context.Context) error
	SeedFunc           func() error
	ExecuteQueryFunc   func(query string) (*QueryResult, bool, string)
	DescribeSchemaFunc func() (string, error)

	// Track calls for verification
	SetupCalled          bool
	CloseCalled          bool
	SeedCalled           bool
	ExecuteQueryCalled   bool
	DescribeSchemaCalled bool
	ExecutedQuery        string
}

func (m *MockDatabaseManager) Setup(ctx context.Context) error {
	m.SetupCalled = true
	if m.SetupFunc != nil {
		return m.SetupFunc(ctx)
	}
	return nil
}

func (m *MockDatabaseManager) Close(ctx context.Context) error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}

func (m *MockDatabaseManager) Seed() error {
	m.SeedCalled = true
	if m.SeedFunc != nil {
		return m.SeedFunc()
	}
	return nil
}

func (m *MockDatabaseManager) ExecuteQuery(query string) (*QueryResult, bool, string) {
	m.ExecuteQueryCalled = true
	m.ExecutedQuery = query
	if m.ExecuteQueryFunc != nil {
		return m.ExecuteQueryFunc(query)
	}
	return &QueryResult{Columns: []string{}, Rows: [][]string{}}, true, "Query executed successfully"
}

func (m *MockDatabaseManager) DescribeSchema() (string, error) {
	m.DescribeSchemaCalled = true
	if m.DescribeSchemaFunc != nil {
		return m.DescribeSchemaFunc()
	}
	return "", nil
}

// MockSchemaLoader is a mock implementation of SchemaLoader for testing
type MockSchemaLoader struct {
	LoadFunc func(path string) (string, error)

	LoadCalled bool
}

func (m *MockSchemaLoader) Load(path string) (string, error) {
	m.LoadCalled = true
	if m.LoadFunc != nil {
		return m.LoadFunc(path)
	}
	return "", nil
}

// MockTranslator is a mock implementation of Translator for testing
type MockTranslator struct {
	GenerateFunc           func(ctx context.Context, question, schemaText string) (string, bool)
	GenerateWithRemoteFunc func(ctx context.Context, question, schemaText string) (string, bool)

	GenerateCalled           bool
	GenerateWithRemoteCalled bool
	SeenSchemaText           string
}

func (m *MockTranslator) Generate(ctx context.Context, question, schemaText string) (string, bool) {
	m.GenerateCalled = true
	m.SeenSchemaText = schemaText
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, question, schemaText)
	}
	return "SELECT * FROM mock LIMIT 10;", true
}

func (m *MockTranslator) GenerateWithRemote(ctx context.Context, question, schemaText string) (string, bool) {
	m.GenerateWithRemoteCalled = true
	m.SeenSchemaText = schemaText
	if m.GenerateWithRemoteFunc != nil {
		return m.GenerateWithRemoteFunc(ctx, question, schemaText)
	}
	return "SELECT * FROM mock LIMIT 10;", true
}

// NewTestDatabase creates a database value without requiring Docker
func NewTestDatabase() *Database {
	return &Database{
		Container: nil,
		DB:        nil,
		ConnStr:   "test://connection",
	}
}

// SimulateError simulates various database errors for testing
func SimulateError(errType string) error {
	switch errType {
	case "connection":
		return fmt.Errorf("connection refused")
	case "syntax":
		return fmt.Errorf("syntax error at or near 'INVALID'")
	case "permission":
		return fmt.Errorf("permission denied")
	default:
		return fmt.Errorf("simulated error: %s", errType)
	}
}
