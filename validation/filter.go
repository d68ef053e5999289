package validation

import (
	"fmt"
	"strings"
)

// WildcardNote is attached to tool responses when wildcard characters
// were stripped from a filter value.
const WildcardNote = "Wildcard characters (* and ?) were removed from the filter. " +
	"The ~ operator already performs substring matching."

// SanitizeFilterValue strips glob wildcards from a filter value. The
// LogicMonitor ~ operator does substring matching, so literal * or ?
// characters never match and usually signal a caller expecting glob
// semantics. Returns the cleaned value and whether anything was
// removed.
func SanitizeFilterValue(value string) (string, bool) {
	if value == "" {
		return value, false
	}
	cleaned := strings.NewReplacer("*", "", "?", "").Replace(value)
	return cleaned, cleaned != value
}

// QuoteFilterValue quotes a filter value for the LogicMonitor filter
// syntax, escaping embedded double quotes.
func QuoteFilterValue(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}

// FilterBuilder assembles a LogicMonitor filter expression. Clauses
// are combined with commas (AND logic).
type FilterBuilder struct {
	clauses  []string
	modified bool
}

// NewFilter creates an empty FilterBuilder.
func NewFilter() *FilterBuilder {
	return &FilterBuilder{}
}

// Eq adds an equality clause, field:value.
func (f *FilterBuilder) Eq(field string, value any) *FilterBuilder {
	f.clauses = append(f.clauses, fmt.Sprintf("%s:%v", field, value))
	return f
}

// Contains adds a substring clause, field~"value". The value is
// sanitized and quoted.
func (f *FilterBuilder) Contains(field, value string) *FilterBuilder {
	cleaned, modified := SanitizeFilterValue(value)
	if modified {
		f.modified = true
	}
	f.clauses = append(f.clauses, field+"~"+QuoteFilterValue(cleaned))
	return f
}

// GreaterOrEqual adds a field>:value clause.
func (f *FilterBuilder) GreaterOrEqual(field string, value any) *FilterBuilder {
	f.clauses = append(f.clauses, fmt.Sprintf("%s>:%v", field, value))
	return f
}

// LessOrEqual adds a field<:value clause.
func (f *FilterBuilder) LessOrEqual(field string, value any) *FilterBuilder {
	f.clauses = append(f.clauses, fmt.Sprintf("%s<:%v", field, value))
	return f
}

// Raw adds a clause verbatim.
func (f *FilterBuilder) Raw(clause string) *FilterBuilder {
	if clause != "" {
		f.clauses = append(f.clauses, clause)
	}
	return f
}

// Empty returns true if no clauses were added.
func (f *FilterBuilder) Empty() bool {
	return len(f.clauses) == 0
}

// Modified returns true if any filter value was altered during
// sanitization.
func (f *FilterBuilder) Modified() bool {
	return f.modified
}

// String returns the combined filter expression.
func (f *FilterBuilder) String() string {
	return strings.Join(f.clauses, ",")
}
