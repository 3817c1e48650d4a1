package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Collection is the document-style contract the catalog consumes, backed by
// one gorm model table.
type Collection[T any] struct {
	db   *gorm.DB
	name string
}

func NewCollection[T any](db *gorm.DB, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

// Find never returns a nil slice on success.
func (c *Collection[T]) Find(ctx context.Context, q ...Query) ([]T, error) {
	records := []T{}
	if err := c.db.WithContext(ctx).
		Scopes(toScopes(q)...).
		Find(&records).Error; err != nil {

		return nil, storeErr("find", c.name, err)
	}
	return records, nil
}

func (c *Collection[T]) FindOne(ctx context.Context, q ...Query) (*T, error) {
	var record T
	if err := c.db.WithContext(ctx).
		Scopes(toScopes(q)...).
		Take(&record).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("find_one", c.name, err)
	}
	return &record, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id uuid.UUID, q ...Query) (*T, error) {
	var record T
	if err := c.db.WithContext(ctx).
		Scopes(toScopes(q)...).
		First(&record, c.name+".id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeErr("find_by_id", c.name, err)
	}
	return &record, nil
}

func (c *Collection[T]) Count(ctx context.Context, q ...Query) (int64, error) {
	var n int64
	if err := c.db.WithContext(ctx).
		Model(new(T)).
		Scopes(toScopes(q)...).
		Count(&n).Error; err != nil {

		return 0, storeErr("count", c.name, err)
	}
	return n, nil
}

// Insert assigns the identifier through the model's BeforeCreate hook.
func (c *Collection[T]) Insert(ctx context.Context, record *T) error {
	return storeErr("insert", c.name, c.db.WithContext(ctx).Create(record).Error)
}

// ReplaceByID overwrites every column of the record stored under id, keeping
// id and created_at. Associations are left untouched.
func (c *Collection[T]) ReplaceByID(ctx context.Context, id uuid.UUID, record *T) (*T, error) {
	result := c.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(record)
	if result.Error != nil {
		return nil, storeErr("replace", c.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return c.FindByID(ctx, id)
}

// DeleteByID reports whether a row was removed. Extra queries make the
// delete conditional.
func (c *Collection[T]) DeleteByID(ctx context.Context, id uuid.UUID, q ...Query) (bool, error) {
	result := c.db.WithContext(ctx).
		Scopes(toScopes(q)...).
		Delete(new(T), c.name+".id = ?", id)
	if result.Error != nil {
		return false, storeErr("delete", c.name, result.Error)
	}
	return result.RowsAffected > 0, nil
}
