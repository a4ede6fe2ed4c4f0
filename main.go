package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/askql/askql/translate"
)

var (
	schemaFile  string
	previewMode bool
	exportMode  bool
	remoteMode  bool
	executeMode bool
	mcpMode     bool
)

var rootCmd = &cobra.Command{
	Use:   "askql [question]",
	Short: "Translate natural-language questions into SQL",
	Long: `askql turns a free-text question about tabular data into an executable SQL
statement, given a schema description in either the simple "Table:/- column"
notation or SQL CREATE TABLE text.

Translation runs an ordered cascade: a fixed rule table, optionally remote
text-generation models (-r), and a commented template fallback.

Modes:
  default: print the generated SQL for the question
  preview mode (-p): normalize the schema file to the canonical notation
  export mode (-e): output the schema file as SQL CREATE statements
  execute mode (-x): run the SQL against a seeded demo PostgreSQL store
  mcp mode (--mcp): run as Model Context Protocol server`,
	Args: func(cmd *cobra.Command, args []string) error {
		if mcpMode || previewMode || exportMode {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: runAskql,
}

func main() {
	if err := run(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	if rootCmd.Flags().Lookup("schema") == nil {
		rootCmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "Path to a schema description file (simple notation or DDL)")
		rootCmd.Flags().BoolVarP(&previewMode, "preview", "p", false, "Print the canonical schema notation and exit")
		rootCmd.Flags().BoolVarP(&exportMode, "export", "e", false, "Export the schema as SQL CREATE statements and exit")
		rootCmd.Flags().BoolVarP(&remoteMode, "remote", "r", false, "Try remote generation models before the rule cascade")
		rootCmd.Flags().BoolVarP(&executeMode, "execute", "x", false, "Execute the generated SQL against a seeded demo store")
		rootCmd.Flags().BoolVar(&mcpMode, "mcp", false, "Run as Model Context Protocol server")
	}

	return rootCmd.Execute()
}

func runAskql(cmd *cobra.Command, args []string) {
	if mcpMode {
		slog.Info("starting mcp server")
		if err := StartMCPServer(); err != nil {
			slog.Error("failed to start mcp server", "error", err)
			os.Exit(1)
		}
		return
	}

	loader := NewFileSchemaLoader()

	var schemaText string
	if schemaFile != "" {
		text, err := loader.Load(schemaFile)
		if err != nil {
			slog.Error("failed to load schema", "error", err)
			os.Exit(1)
		}
		schemaText = text
	}

	if previewMode {
		fmt.Print(translate.Normalize(schemaText))
		return
	}
	if exportMode {
		fmt.Print(translate.FormatCreateSQL(translate.Parse(schemaText)))
		return
	}

	question := args[0]
	engine := newEngineFromEnv()
	ctx := context.Background()

	if executeMode {
		dbManager := NewPostgreSQLManager("postgres:16-alpine")
		if err := runAgainstDemoStore(ctx, question, schemaText, dbManager, engine, remoteMode); err != nil {
			slog.Error("failed to run against demo store", "error", err)
			os.Exit(1)
		}
		return
	}

	sql, ok := answerQuestion(ctx, question, schemaText, engine, remoteMode)
	fmt.Println(sql)
	if !ok {
		os.Exit(1)
	}
}

// newEngineFromEnv builds the translation engine; the remote tier reads its
// bearer token and optional endpoint override from the environment.
func newEngineFromEnv() *translate.Engine {
	remote := translate.NewRemoteGenerator(translate.RemoteConfig{
		BaseURL: os.Getenv("ASKQL_HF_ENDPOINT"),
		Token:   os.Getenv("ASKQL_HF_TOKEN"),
	})
	return translate.NewEngine(remote)
}

// answerQuestion translates a question against schema text in either
// notation. DDL input is normalized before the engine sees it.
func answerQuestion(ctx context.Context, question, schemaText string, translator Translator, useRemote bool) (string, bool) {
	if translate.DetectNotation(schemaText) == translate.NotationDDL {
		schemaText = translate.Normalize(schemaText)
	}
	if useRemote {
		return translator.GenerateWithRemote(ctx, question, schemaText)
	}
	return translator.Generate(ctx, question, schemaText)
}

// runAgainstDemoStore spins up the demo store, translates the question
// against the caller's schema or the store's own, executes the SQL, and
// prints the rendered rows.
func runAgainstDemoStore(ctx context.Context, question, schemaText string, dbManager DatabaseManager, translator Translator, useRemote bool) error {
	slog.Info("setting up demo store")
	if err := dbManager.Setup(ctx); err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}
	defer func() {
		if err := dbManager.Close(ctx); err != nil {
			slog.Error("failed to cleanup", "error", err)
		}
	}()

	if err := dbManager.Seed(); err != nil {
		return fmt.Errorf("failed to seed demo data: %w", err)
	}

	if strings.TrimSpace(schemaText) == "" {
		described, err := dbManager.DescribeSchema()
		if err != nil {
			return fmt.Errorf("failed to describe schema: %w", err)
		}
		schemaText = described
	}

	sql, ok := answerQuestion(ctx, question, schemaText, translator, useRemote)
	if !ok {
		return fmt.Errorf("failed to generate sql: %s", sql)
	}

	fmt.Println(sql)
	fmt.Println()

	result, ok, message := dbManager.ExecuteQuery(sql)
	if !ok {
		return fmt.Errorf("%s", message)
	}

	fmt.Print(renderResult(result))
	slog.Info("query executed", "rows", len(result.Rows))
	return nil
}

func renderResult(result *QueryResult) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(result.Columns, "\t"))
	for _, row := range result.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
	return sb.String()
}
