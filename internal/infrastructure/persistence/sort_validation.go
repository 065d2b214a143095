package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField[V any](sortField string, allowedFields map[string]V, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if _, ok := allowedFields[trimmed]; ok {
		return trimmed
	}
	return defaultField
}

// ReconciliationSortColumns maps the accepted sort keys of the reconciliation
// list to the SQL expressions they order by. Keys are what clients send.
var ReconciliationSortColumns = map[string]string{
	"created_at":          "r.created_at",
	"updated_at":          "r.updated_at",
	"reference_number":    "r.reference_number",
	"title":               "r.title",
	"reconciliation_date": "r.reconciliation_date",
	"due_date":            "r.due_date",
	"our_amount":          "r.our_amount",
	"their_amount":        "r.their_amount",
	"difference":          "(r.our_amount - r.their_amount)",
	"status":              "r.status",
	"priority":            "r.priority",
	"company_name":        "c.name",
}

// DefaultReconciliationSort is used when the requested key is not whitelisted
const DefaultReconciliationSort = "created_at"

// EscapeLike escapes LIKE wildcards so user input matches literally.
// Patterns built from it must declare ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
