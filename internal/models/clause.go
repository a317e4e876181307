// Package models defines core data structures for clauses, claims, and decisions.
package models

import "time"

// Clause is one indexed unit of policy text (a non-empty paragraph).
// IDs are sequential integers assigned at ingestion time, stringified and
// zero-based; they are stable only within a single ingestion run.
type Clause struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	Position  int       `json:"position" db:"position"`
	Embedding []float32 `json:"-" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Source records one corpus file that fed an ingestion run.
type Source struct {
	ID        string    `json:"id" db:"id"`
	Path      string    `json:"path" db:"path"`
	Blocks    int       `json:"blocks" db:"blocks"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
