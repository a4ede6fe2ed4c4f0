package translate

import (
	"regexp"
	"strings"
)

var (
	fenceRe      = regexp.MustCompile("```sql\n?|```\n?")
	whitespaceRe = regexp.MustCompile(`\s+`)
)

var sqlPrefixes = []string{"SQL:", "Query:", "Answer:"}

// sqlKeywords is checked in order; the statement is cut at the first
// keyword from this list that occurs in the text.
var sqlKeywords = []string{"SELECT", "INSERT", "UPDATE", "DELETE", "WITH", "CREATE"}

// CleanSQL normalizes raw model output to a bare SQL statement: markdown
// fences and known prose prefixes are stripped, everything before the first
// SQL keyword is discarded, and whitespace runs collapse to single spaces.
// Text without any SQL keyword passes through otherwise unchanged.
func CleanSQL(raw string) string {
	sql := strings.TrimSpace(raw)
	sql = fenceRe.ReplaceAllString(sql, "")

	for _, prefix := range sqlPrefixes {
		if strings.HasPrefix(sql, prefix) {
			sql = strings.TrimSpace(strings.TrimPrefix(sql, prefix))
		}
	}

	upper := strings.ToUpper(sql)
	for _, keyword := range sqlKeywords {
		if pos := strings.Index(upper, keyword); pos >= 0 {
			sql = sql[pos:]
			break
		}
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(sql, " "))
}
