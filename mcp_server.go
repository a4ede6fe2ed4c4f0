package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/askql/askql/translate"
)

// StartMCPServer starts the MCP server exposing the translation toolkit
func StartMCPServer() error {
	s := server.NewMCPServer(
		"askql",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	generateSQLTool := mcp.NewTool("generate_sql",
		mcp.WithDescription("Translate a natural-language question into SQL for a described schema"),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("The free-text question about the data"),
		),
		mcp.WithString("schema",
			mcp.Required(),
			mcp.Description("Schema description in simple notation or SQL DDL"),
		),
		mcp.WithBoolean("use_remote",
			mcp.Description("Try remote generation models before the rule cascade (default: false)"),
		),
	)

	s.AddTool(generateSQLTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleGenerateSQL(ctx, request)
	})

	normalizeSchemaTool := mcp.NewTool("normalize_schema",
		mcp.WithDescription("Normalize a schema description to the canonical simple notation and summarize its tables"),
		mcp.WithString("schema",
			mcp.Required(),
			mcp.Description("Schema description in simple notation or SQL DDL"),
		),
	)

	s.AddTool(normalizeSchemaTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleNormalizeSchema(ctx, request)
	})

	imageToSchemaTool := mcp.NewTool("image_to_schema",
		mcp.WithDescription("Produce an editable schema template from an uploaded schema image"),
		mcp.WithString("image_base64",
			mcp.Required(),
			mcp.Description("Base64-encoded image bytes"),
		),
	)

	s.AddTool(imageToSchemaTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleImageToSchema(ctx, request)
	})

	slog.Info("starting askql mcp server")
	return server.ServeStdio(s)
}

// handleGenerateSQL processes the generate_sql tool request
func handleGenerateSQL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question parameter is required"), nil
	}
	schemaText, err := request.RequireString("schema")
	if err != nil {
		return mcp.NewToolResultError("schema parameter is required"), nil
	}
	useRemote := request.GetBool("use_remote", false)

	sql, err := generateSQLCore(ctx, question, schemaText, useRemote, newEngineFromEnv())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(sql), nil
}

// generateSQLCore contains the core logic for SQL generation, separated for testing
func generateSQLCore(ctx context.Context, question, schemaText string, useRemote bool, translator Translator) (string, error) {
	sql, ok := answerQuestion(ctx, question, schemaText, translator, useRemote)
	if !ok {
		return "", fmt.Errorf("failed to generate sql: %s", sql)
	}
	return sql, nil
}

// handleNormalizeSchema processes the normalize_schema tool request
func handleNormalizeSchema(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	schemaText, err := request.RequireString("schema")
	if err != nil {
		return mcp.NewToolResultError("schema parameter is required"), nil
	}

	output, err := normalizeSchemaCore(schemaText)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(output), nil
}

// normalizeSchemaCore contains the core logic for schema normalization, separated for testing
func normalizeSchemaCore(schemaText string) (string, error) {
	schema := translate.Parse(schemaText)

	summary := map[string]interface{}{
		"notation":    string(translate.DetectNotation(schemaText)),
		"table_count": len(schema.Tables),
		"canonical":   translate.FormatSimpleText(schema),
		"tables":      make([]map[string]interface{}, len(schema.Tables)),
	}

	for i, table := range schema.Tables {
		columns := make([]string, len(table.Columns))
		for j, col := range table.Columns {
			columns[j] = col.Name
		}
		tableInfo := map[string]interface{}{
			"name":         table.Name,
			"column_count": len(table.Columns),
			"columns":      columns,
		}
		summary["tables"].([]map[string]interface{})[i] = tableInfo
	}

	jsonOutput, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result to JSON: %w", err)
	}

	return string(jsonOutput), nil
}

// handleImageToSchema processes the image_to_schema tool request
func handleImageToSchema(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	encoded, err := request.RequireString("image_base64")
	if err != nil {
		return mcp.NewToolResultError("image_base64 parameter is required"), nil
	}

	imageData, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid base64 image data: %v", err)), nil
	}

	text, ok := NewImageSchemaExtractor().ExtractSchema(imageData)
	if !ok {
		return mcp.NewToolResultError(text), nil
	}

	return mcp.NewToolResultText(text), nil
}
