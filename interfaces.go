package main

import "context"

// DatabaseManager handles the demonstration store lifecycle and operations
type DatabaseManager interface {
	// Setup creates and initializes the store
	Setup(ctx context.Context) error
	// Close cleans up store resources
	Close(ctx context.Context) error
	// Seed creates the fixture tables and rows
	Seed() error
	// ExecuteQuery runs SQL and reports the outcome via the message
	ExecuteQuery(query string) (*QueryResult, bool, string)
	// DescribeSchema returns the live schema in simple notation
	DescribeSchema() (string, error)
}

// SchemaLoader reads schema description text
type SchemaLoader interface {
	// Load returns the raw schema text from the given path
	Load(path string) (string, error)
}

// Translator produces SQL from a question and simple-notation schema text
type Translator interface {
	// Generate runs the rule cascade with the template floor
	Generate(ctx context.Context, question, schemaText string) (string, bool)
	// GenerateWithRemote tries remote models first, then the cascade
	GenerateWithRemote(ctx context.Context, question, schemaText string) (string, bool)
}
