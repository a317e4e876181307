// Package storage defines persistence for clauses and ingestion sources.
package storage

import (
	"context"

	"github.com/coverwise/claimlens/internal/models"
)

// Storage persists clauses and the sources they were ingested from.
// Clauses are written once per ingestion run and never updated; the clause
// count doubles as the one-shot ingestion guard.
type Storage interface {
	// Source operations
	CreateSource(ctx context.Context, src *models.Source) error
	ListSources(ctx context.Context) ([]*models.Source, error)
	CountSources(ctx context.Context) (int64, error)

	// Clause operations
	BatchCreateClauses(ctx context.Context, clauses []*models.Clause) error
	GetClause(ctx context.Context, id string) (*models.Clause, error)
	ListClauses(ctx context.Context) ([]*models.Clause, error)
	CountClauses(ctx context.Context) (int64, error)

	// Reset removes all sources and clauses (manual re-ingestion path).
	Reset(ctx context.Context) error

	Close() error
}
