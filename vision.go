package main

import (
	"log/slog"
	"strings"
)

// ImageSchemaExtractor is a stub collaborator for image-based schema
// extraction. It does not perform real recognition: it returns one of two
// fixed templates for the user to edit, preserving the (text, ok) contract
// a real implementation would have to honor.
type ImageSchemaExtractor struct{}

func NewImageSchemaExtractor() *ImageSchemaExtractor {
	return &ImageSchemaExtractor{}
}

// ExtractSchema returns an editable schema template for the uploaded image.
// Recognized text longer than a trivial fragment is reformatted into the
// simple notation; otherwise the generic skeleton is returned.
func (e *ImageSchemaExtractor) ExtractSchema(imageData []byte) (string, bool) {
	if len(imageData) == 0 {
		return "no image data provided", false
	}

	slog.Debug("image schema extraction requested", "bytes", len(imageData))

	recognized := suggestedSchemaTemplate
	if len(strings.TrimSpace(recognized)) > 50 {
		return FormatExtractedText(recognized), true
	}
	return skeletonSchemaTemplate, true
}

// FormatExtractedText coerces loosely structured recognized text toward the
// simple notation: lines that look like table declarations gain a "Table:"
// prefix and lines that look like column definitions gain the dash prefix.
func FormatExtractedText(raw string) string {
	var formatted []string

	for _, raw := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		switch {
		case anyKeyword(lower, "table", "create", "entity"):
			if !strings.HasPrefix(line, "Table:") {
				formatted = append(formatted, "Table: "+line)
			} else {
				formatted = append(formatted, line)
			}
		case strings.Contains(line, ":") || strings.Contains(lower, "varchar") || strings.Contains(lower, "integer"):
			if !strings.HasPrefix(line, "  -") {
				formatted = append(formatted, "  - "+line)
			} else {
				formatted = append(formatted, line)
			}
		default:
			formatted = append(formatted, line)
		}
	}

	return strings.Join(formatted, "\n")
}

func anyKeyword(s string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

const suggestedSchemaTemplate = `Based on your uploaded image, here's a template schema you can customize:

Table: users
  - id: INTEGER (PRIMARY KEY)
  - username: VARCHAR(50) (NOT NULL)
  - email: VARCHAR(100) (UNIQUE)
  - created_at: TIMESTAMP
  - updated_at: TIMESTAMP

Table: products
  - id: INTEGER (PRIMARY KEY)
  - name: VARCHAR(200) (NOT NULL)
  - description: TEXT
  - price: DECIMAL(10,2)
  - category_id: INTEGER (FOREIGN KEY)
  - stock_quantity: INTEGER
  - created_at: TIMESTAMP

Table: orders
  - id: INTEGER (PRIMARY KEY)
  - user_id: INTEGER (FOREIGN KEY)
  - total_amount: DECIMAL(10,2)
  - status: VARCHAR(20)
  - order_date: TIMESTAMP

Please modify this template to match your actual database structure from the image.`

const skeletonSchemaTemplate = `# Schema extracted from your image
# Please review and modify to match your actual database structure

Table: table_name_1
  - id: INTEGER (PRIMARY KEY)
  - column_1: VARCHAR(100) (NOT NULL)
  - column_2: INTEGER
  - column_3: TEXT
  - created_at: TIMESTAMP

Table: table_name_2
  - id: INTEGER (PRIMARY KEY)
  - foreign_key_id: INTEGER (FOREIGN KEY)
  - column_1: VARCHAR(50)
  - column_2: DECIMAL(10,2)
  - status: VARCHAR(20)`
