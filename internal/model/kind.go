package model

import (
	"github.com/gedex/inflector"
	"github.com/google/uuid"
)

// Kind names an entity family as it appears in catalog paths.
type Kind string

const (
	KindAuthor       Kind = "author"
	KindGenre        Kind = "genre"
	KindBook         Kind = "book"
	KindBookInstance Kind = "bookinstance"
)

const BasePath = "/catalog"

func (k Kind) Plural() string {
	return inflector.Pluralize(string(k))
}

func EntityURL(k Kind, id uuid.UUID) string {
	return BasePath + "/" + string(k) + "/" + id.String()
}

// ListURL is where list views live and where deletes redirect to.
func ListURL(k Kind) string {
	return BasePath + "/" + k.Plural() + "/"
}

// All returns every model that needs a table.
func All() []any {
	return []any{&Author{}, &Genre{}, &Book{}, &BookInstance{}}
}
