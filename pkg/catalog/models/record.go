// Package models defines data structures for the decoded catalog.
package models

// Record is one decoded data row, keyed by header column name.
// Missing trailing cells map to the empty string.
type Record map[string]string

// Get returns the value for a column, or "" when the column is absent.
func (r Record) Get(name string) string {
	return r[name]
}
