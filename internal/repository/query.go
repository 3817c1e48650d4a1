package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query narrows, expands or orders a collection read. Queries are gorm scopes.
type Query func(*gorm.DB) *gorm.DB

func Eq(column string, value any) Query {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s = ?", column), value)
	}
}

func In[V any](column string, values []V) Query {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s IN ?", column), values)
	}
}

// Preload expands a stored reference into the referenced record.
func Preload(association string, q ...Query) Query {
	return func(db *gorm.DB) *gorm.DB {
		if len(q) == 0 {
			return db.Preload(association)
		}
		return db.Preload(association, func(db *gorm.DB) *gorm.DB {
			return db.Scopes(toScopes(q)...)
		})
	}
}

// Fields projects the read onto the given columns. Keep the id and any
// foreign key a Preload needs.
func Fields(columns ...string) Query {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(columns)
	}
}

func OrderBy(order string) Query {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

// InGenre selects books tagged with the genre.
func InGenre(genreID uuid.UUID) Query {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN book_genres ON book_genres.book_id = books.id").
			Where("book_genres.genre_id = ?", genreID)
	}
}

// NotReferencedBy restricts a delete to rows no dependent row points at.
// table.column is the dependent's foreign key, parent the parent's table.
func NotReferencedBy(table, column, parent string) Query {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Table(table).
			Select("1").
			Where(fmt.Sprintf("%s.%s = %s.id", table, column, parent))
		return db.Where("NOT EXISTS (?)", sub)
	}
}

func toScopes(q []Query) []func(*gorm.DB) *gorm.DB {
	scopes := make([]func(*gorm.DB) *gorm.DB, 0, len(q))
	for _, s := range q {
		scopes = append(scopes, s)
	}
	return scopes
}
