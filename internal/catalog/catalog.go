// Package catalog holds the library operations behind every catalog page:
// composed reads, validated writes and guarded deletes.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/repository"
)

// ErrNotFound is returned when the target of a detail, update or delete
// page does not exist.
var ErrNotFound = errors.New("catalog: not found")

type Service struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewService(store *repository.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// optional turns an absent record into nil so composed reads can carry it.
func optional[T any](fn func(ctx context.Context) (*T, error)) func(ctx context.Context) (*T, error) {
	return func(ctx context.Context) (*T, error) {
		v, err := fn(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return v, err
	}
}

func byID[T any](c *repository.Collection[T], id uuid.UUID, q ...repository.Query) func(ctx context.Context) (*T, error) {
	return optional(func(ctx context.Context) (*T, error) {
		return c.FindByID(ctx, id, q...)
	})
}

func find[T any](c *repository.Collection[T], q ...repository.Query) func(ctx context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		return c.Find(ctx, q...)
	}
}

func count[T any](c *repository.Collection[T], q ...repository.Query) func(ctx context.Context) (int64, error) {
	return func(ctx context.Context) (int64, error) {
		return c.Count(ctx, q...)
	}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
