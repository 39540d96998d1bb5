package querybuilder

// excludedColumns never take part in free-text search: identifiers,
// timestamps, file paths and type discriminants.
var excludedColumns = map[string]struct{}{
	"uuid":             {},
	"id":               {},
	"created_at":       {},
	"updated_at":       {},
	"department_head":  {},
	"appointment_date": {},
	"resign_date":      {},
	"deadline":         {},
	"published_date":   {},
	"file":             {},
	"cover_image":      {},
	"documents":        {},
	"image":            {},
	"table_name":       {},
	"page_name":        {},
	"programs":         {},
	"type":             {},
	"is_global":        {},
}

// IsExcluded reports whether a column name is on the search deny-list
func IsExcluded(column string) bool {
	_, ok := excludedColumns[column]
	return ok
}
