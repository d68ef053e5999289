// Package validation provides input validation for tool arguments:
// struct tag validation via go-playground/validator, a fluent field
// validator for hand-rolled checks, and sanitization for LogicMonitor
// filter expressions.
package validation
