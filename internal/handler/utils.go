package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

const formDate = "2006-01-02"

func parseID(c *gin.Context, code, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest, code, message)
		return uuid.Nil, false
	}
	return id, true
}

func listPath(k model.Kind) string {
	return "/" + k.Plural() + "/"
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(formDate)
}

func toAuthor(a model.Author) Author {
	return Author{
		ID:          a.ID,
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: model.DateOf(a.DateOfBirth),
		DateOfDeath: model.DateOf(a.DateOfDeath),
		Name:        a.Name(),
		Lifespan:    a.Lifespan(),
		URL:         a.URL(),
	}
}

func toAuthors(authors []model.Author) []Author {
	res := make([]Author, 0, len(authors))
	for _, a := range authors {
		res = append(res, toAuthor(a))
	}
	return res
}

func toAuthorSummary(a *model.Author) *AuthorSummary {
	if a == nil {
		return nil
	}
	return &AuthorSummary{ID: a.ID, Name: a.Name(), URL: a.URL()}
}

func toAuthorSummaries(authors []model.Author) []AuthorSummary {
	res := make([]AuthorSummary, 0, len(authors))
	for i := range authors {
		res = append(res, *toAuthorSummary(&authors[i]))
	}
	return res
}

func toGenre(g model.Genre) Genre {
	return Genre{ID: g.ID, Name: g.Name, URL: g.URL()}
}

func toGenres(genres []model.Genre) []Genre {
	res := make([]Genre, 0, len(genres))
	for _, g := range genres {
		res = append(res, toGenre(g))
	}
	return res
}

// toGenreOptions marks the genres whose identifiers appear in checked.
func toGenreOptions(genres []model.Genre, checked []string) []GenreOption {
	marked := make(map[string]bool, len(checked))
	for _, id := range checked {
		marked[id] = true
	}

	res := make([]GenreOption, 0, len(genres))
	for _, g := range genres {
		res = append(res, GenreOption{ID: g.ID, Name: g.Name, Checked: marked[g.ID.String()]})
	}
	return res
}

func toBook(b model.Book) Book {
	return Book{
		ID:      b.ID,
		Title:   b.Title,
		Author:  toAuthorSummary(b.Author),
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Genres:  toGenres(b.Genres),
		URL:     b.URL(),
	}
}

func toBookSummary(b model.Book) BookSummary {
	return BookSummary{
		ID:      b.ID,
		Title:   b.Title,
		Author:  toAuthorSummary(b.Author),
		Summary: b.Summary,
		URL:     b.URL(),
	}
}

func toBookSummaries(books []model.Book) []BookSummary {
	res := make([]BookSummary, 0, len(books))
	for _, b := range books {
		res = append(res, toBookSummary(b))
	}
	return res
}

func toBookInstance(bi model.BookInstance) BookInstance {
	var book *BookSummary
	if bi.Book != nil {
		s := toBookSummary(*bi.Book)
		book = &s
	}

	return BookInstance{
		ID:               bi.ID,
		Book:             book,
		Imprint:          bi.Imprint,
		Status:           bi.Status,
		DueBack:          model.DateOf(bi.DueBack),
		DueBackFormatted: bi.DueBackFormatted(),
		URL:              bi.URL(),
	}
}

func toBookInstances(instances []model.BookInstance) []BookInstance {
	res := make([]BookInstance, 0, len(instances))
	for _, bi := range instances {
		res = append(res, toBookInstance(bi))
	}
	return res
}

func authorForm(a model.Author) *validation.AuthorForm {
	return &validation.AuthorForm{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: formatDate(a.DateOfBirth),
		DateOfDeath: formatDate(a.DateOfDeath),
	}
}

func bookForm(b model.Book) *validation.BookForm {
	ids := b.GenreIDs()
	genres := make(validation.StringList, 0, len(ids))
	for _, id := range ids {
		genres = append(genres, id.String())
	}

	return &validation.BookForm{
		Title:   b.Title,
		Author:  b.AuthorID.String(),
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Genre:   genres,
	}
}

func instanceForm(bi model.BookInstance) *validation.BookInstanceForm {
	return &validation.BookInstanceForm{
		Book:    bi.BookID.String(),
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: formatDate(bi.DueBack),
	}
}
