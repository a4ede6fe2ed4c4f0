package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/askql/askql/translate"
)

// QueryResult holds executed query output rendered as text cells.
type QueryResult struct {
	Columns []string
	Rows    [][]string
}

type Database struct {
	Container testcontainers.Container
	DB        *sql.DB
	ConnStr   string
}

// seedScript creates and populates the demonstration store: three related
// tables with a small fixed data set, enough to exercise every pattern the
// rule cascade knows about.
const seedScript = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    department TEXT,
    salary INTEGER,
    hire_date DATE,
    age INTEGER
);

CREATE TABLE IF NOT EXISTS products (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT,
    price DECIMAL(10,2),
    stock_quantity INTEGER,
    supplier_id INTEGER
);

CREATE TABLE IF NOT EXISTS sales (
    id INTEGER PRIMARY KEY,
    product_id INTEGER REFERENCES products(id),
    employee_id INTEGER REFERENCES employees(id),
    quantity INTEGER,
    sale_date DATE,
    total_amount DECIMAL(10,2)
);

INSERT INTO employees (id, name, department, salary, hire_date, age) VALUES
    (1, 'John Doe', 'Engineering', 75000, '2022-01-15', 30),
    (2, 'Jane Smith', 'Marketing', 65000, '2021-03-20', 28),
    (3, 'Bob Johnson', 'Sales', 55000, '2023-06-10', 35),
    (4, 'Alice Brown', 'Engineering', 80000, '2020-11-05', 32),
    (5, 'Charlie Wilson', 'HR', 60000, '2022-08-15', 29),
    (6, 'Diana Davis', 'Sales', 58000, '2021-12-01', 31),
    (7, 'Eva Garcia', 'Engineering', 85000, '2019-04-12', 34),
    (8, 'Frank Miller', 'Marketing', 62000, '2023-01-30', 27)
ON CONFLICT (id) DO NOTHING;

INSERT INTO products (id, name, category, price, stock_quantity, supplier_id) VALUES
    (1, 'Laptop Pro', 'Electronics', 1299.99, 50, 1),
    (2, 'Wireless Mouse', 'Electronics', 29.99, 200, 1),
    (3, 'Office Chair', 'Furniture', 249.99, 30, 2),
    (4, 'Standing Desk', 'Furniture', 399.99, 15, 2),
    (5, 'Monitor 27"', 'Electronics', 299.99, 75, 1),
    (6, 'Keyboard Mechanical', 'Electronics', 89.99, 100, 1),
    (7, 'Desk Lamp', 'Furniture', 49.99, 80, 2),
    (8, 'Webcam HD', 'Electronics', 79.99, 60, 1)
ON CONFLICT (id) DO NOTHING;

INSERT INTO sales (id, product_id, employee_id, quantity, sale_date, total_amount) VALUES
    (1, 1, 3, 2, '2024-01-15', 2599.98),
    (2, 2, 3, 5, '2024-01-16', 149.95),
    (3, 3, 6, 1, '2024-01-20', 249.99),
    (4, 5, 3, 3, '2024-02-01', 899.97),
    (5, 6, 6, 2, '2024-02-05', 179.98),
    (6, 1, 3, 1, '2024-02-10', 1299.99),
    (7, 7, 6, 4, '2024-02-15', 199.96),
    (8, 8, 3, 2, '2024-02-20', 159.98)
ON CONFLICT (id) DO NOTHING;
`

func SetupPostgreSQL(ctx context.Context, image string) (*Database, error) {
	slog.Debug("starting postgresql container", "image", image)
	container, err := postgres.Run(ctx,
		image,
		postgres.WithDatabase("demodb"),
		postgres.WithUsername("demouser"),
		postgres.WithPassword("demopass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	slog.Debug("got database connection string", "connStr", connStr)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("postgresql container ready")
	return &Database{
		Container: container,
		DB:        db,
		ConnStr:   connStr,
	}, nil
}

func (d *Database) Close(ctx context.Context) error {
	if d.DB != nil {
		d.DB.Close()
	}
	if d.Container != nil {
		return d.Container.Terminate(ctx)
	}
	return nil
}

// Seed creates the demonstration tables and inserts the fixture rows.
// Seeding is idempotent.
func (d *Database) Seed() error {
	if _, err := d.DB.Exec(seedScript); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}
	slog.Info("demo store seeded", "tables", 3)
	return nil
}

// ExecuteQuery runs a SQL statement and renders the result set. Failures
// (syntax errors, missing tables) are reported through the message, never
// raised to the caller.
func (d *Database) ExecuteQuery(query string) (*QueryResult, bool, string) {
	result, err := executeQuery(d.DB, query)
	if err != nil {
		return nil, false, fmt.Sprintf("Error executing query: %v", err)
	}
	return result, true, "Query executed successfully"
}

func executeQuery(db *sql.DB, query string) (*QueryResult, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		rendered := make([]string, len(columns))
		for i, value := range values {
			rendered[i] = renderCell(value)
		}
		result.Rows = append(result.Rows, rendered)
	}

	return result, rows.Err()
}

func renderCell(value any) string {
	switch v := value.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IntrospectSchema reads the live table structure from information_schema
// and returns it as a translate model, so the store can describe itself in
// the notation the engine consumes.
func (d *Database) IntrospectSchema() (*translate.Schema, error) {
	tableNames, err := getTables(d.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	slog.Debug("found database tables", "count", len(tableNames))

	schema := &translate.Schema{}
	for _, tableName := range tableNames {
		columns, err := getColumns(d.DB, tableName)
		if err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		schema.Tables = append(schema.Tables, translate.Table{
			Name:    tableName,
			Columns: columns,
		})
	}

	return schema, nil
}

// DescribeSchema returns the live schema in the canonical simple notation.
func (d *Database) DescribeSchema() (string, error) {
	schema, err := d.IntrospectSchema()
	if err != nil {
		return "", err
	}
	return translate.FormatSimpleText(schema), nil
}

func getTables(db *sql.DB) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}

	return tables, rows.Err()
}

func getColumns(db *sql.DB, tableName string) ([]translate.Column, error) {
	query := `
		SELECT
			c.column_name,
			c.data_type,
			c.is_nullable = 'YES' as is_nullable,
			COALESCE(tc.constraint_type = 'PRIMARY KEY', false) as is_primary_key,
			c.character_maximum_length,
			c.numeric_precision,
			c.numeric_scale
		FROM information_schema.columns c
		LEFT JOIN information_schema.key_column_usage kcu ON
			c.table_name = kcu.table_name AND c.column_name = kcu.column_name
		LEFT JOIN information_schema.table_constraints tc ON
			kcu.constraint_name = tc.constraint_name AND tc.constraint_type = 'PRIMARY KEY'
		WHERE c.table_name = $1 AND c.table_schema = 'public'
		ORDER BY c.ordinal_position
	`

	rows, err := db.Query(query, tableName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []translate.Column
	for rows.Next() {
		var (
			name, dataType         string
			isNullable, isPrimary  bool
			charLength             sql.NullInt64
			numPrecision, numScale sql.NullInt64
		)
		if err := rows.Scan(&name, &dataType, &isNullable, &isPrimary, &charLength, &numPrecision, &numScale); err != nil {
			return nil, err
		}

		col := translate.Column{
			Name: name,
			Type: mapDataType(dataType, charLength, numPrecision, numScale),
		}
		if isPrimary {
			col.Constraints = append(col.Constraints, "PRIMARY KEY")
		}
		if !isNullable && !isPrimary {
			col.Constraints = append(col.Constraints, "NOT NULL")
		}
		columns = append(columns, col)
	}

	return columns, rows.Err()
}

func mapDataType(dataType string, charLength, numPrecision, numScale sql.NullInt64) string {
	switch dataType {
	case "character varying":
		if charLength.Valid {
			return fmt.Sprintf("VARCHAR(%d)", charLength.Int64)
		}
		return "VARCHAR(255)"
	case "text":
		return "TEXT"
	case "integer":
		return "INTEGER"
	case "bigint":
		return "BIGINT"
	case "boolean":
		return "BOOLEAN"
	case "numeric", "decimal":
		if numPrecision.Valid && numScale.Valid {
			return fmt.Sprintf("DECIMAL(%d,%d)", numPrecision.Int64, numScale.Int64)
		}
		return "DECIMAL"
	case "timestamp without time zone":
		return "TIMESTAMP"
	case "timestamp with time zone":
		return "TIMESTAMPTZ"
	case "date":
		return "DATE"
	default:
		return strings.ToUpper(dataType)
	}
}
