package main

import (
	"context"
	"fmt"
	"os"
)

type PostgreSQLManager struct {
	image string
	db    *Database
}

func NewPostgreSQLManager(image string) DatabaseManager {
	return &PostgreSQLManager{image: image}
}

func (p *PostgreSQLManager) Setup(ctx context.Context) error {
	db, err := SetupPostgreSQL(ctx, p.image)
	if err != nil {
		return err
	}
	p.db = db
	return nil
}

func (p *PostgreSQLManager) Close(ctx context.Context) error {
	if p.db == nil {
		return nil
	}
	return p.db.Close(ctx)
}

func (p *PostgreSQLManager) Seed() error {
	if p.db == nil {
		return fmt.Errorf("database not set up")
	}
	return p.db.Seed()
}

func (p *PostgreSQLManager) ExecuteQuery(query string) (*QueryResult, bool, string) {
	if p.db == nil {
		return nil, false, "Error executing query: database not set up"
	}
	return p.db.ExecuteQuery(query)
}

func (p *PostgreSQLManager) DescribeSchema() (string, error) {
	if p.db == nil {
		return "", fmt.Errorf("database not set up")
	}
	return p.db.DescribeSchema()
}

type FileSchemaLoader struct{}

func NewFileSchemaLoader() SchemaLoader {
	return &FileSchemaLoader{}
}

func (l *FileSchemaLoader) Load(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	return string(content), nil
}
