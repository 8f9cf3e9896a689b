package database

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// NewID returns a time-ordered UUID string for SQLite primary keys.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ValidUUID reports whether s is a canonical 36-character UUID.
func ValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// NameKey folds a company name so that lookups ignore case.
// A Caser is stateful, so one is built per call.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
