package models

// Counter backs the sequential human-readable identifiers (a001, p001, ...).
// Incremented with a single INSERT ... ON CONFLICT ... RETURNING statement so
// concurrent callers never observe the same value.
type Counter struct {
	Name  string `gorm:"primaryKey;size:30"`
	Value int64
}
