package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/testutil"
)

func TestCreateGenre_DuplicateRedirectsToExisting(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	existing := testutil.SeedGenre(t, db, "Fantasy")

	w := doPostForm(router, "/catalog/genre/create", url.Values{"name": {"  Fantasy "}})
	expectRedirect(t, w, existing.URL())

	var count int64
	db.Model(&model.Genre{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 genre, got %d", count)
	}
}

func TestCreateGenre_ValidationError(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	w := doPostForm(router, "/catalog/genre/create", url.Values{"name": {"ab"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[GenreFormResponse](t, w)
	if len(resp.Errors) != 1 || resp.Errors[0].Message != "Genre name at least 3 characters" {
		t.Fatalf("unexpected errors: %+v", resp.Errors)
	}
	if resp.Data == nil || resp.Data.Name != "ab" {
		t.Fatalf("expected submission echoed back, got %+v", resp.Data)
	}
}

func TestListGenres(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	testutil.SeedGenre(t, db, "Poetry")
	testutil.SeedGenre(t, db, "Fantasy")

	w := doGet(router, "/catalog/genres/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	resp := decode[GenreListResponse](t, w)
	if len(resp.Data) != 2 || resp.Data[0].Name != "Fantasy" {
		t.Fatalf("expected genres sorted by name, got %+v", resp.Data)
	}
}

func TestGetGenre(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	fantasy := testutil.SeedGenre(t, db, "Fantasy")
	author := testutil.SeedAuthor(t, db, "Ursula", "LeGuin")
	testutil.SeedBook(t, db, author, "Earthsea", fantasy)

	w := doGet(router, fantasy.URL())
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decode[GenreDetailResponse](t, w)
	if resp.Data.Name != "Fantasy" || len(resp.Books) != 1 {
		t.Fatalf("unexpected genre detail: %+v", resp)
	}
}

func TestGetGenre_NotFoundRedirects(t *testing.T) {
	router := setupRouter(testutil.NewTestDB(t))

	w := doGet(router, "/catalog/genre/"+uuid.New().String())
	expectRedirect(t, w, "/catalog/genres/")
}

func TestUpdateGenre(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	genre := testutil.SeedGenre(t, db, "Fantsy")

	w := doGet(router, genre.URL()+"/update")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if form := decode[GenreFormResponse](t, w); form.Data == nil || form.Data.Name != "Fantsy" {
		t.Fatalf("expected seeded form, got %+v", form.Data)
	}

	w = doPostForm(router, genre.URL()+"/update", url.Values{"name": {"Fantasy"}})
	expectRedirect(t, w, genre.URL())

	var stored model.Genre
	if err := db.First(&stored, "id = ?", genre.ID).Error; err != nil {
		t.Fatalf("expected genre in db: %v", err)
	}
	if stored.Name != "Fantasy" {
		t.Fatalf("expected renamed genre, got %q", stored.Name)
	}
}

func TestDeleteGenre_BlockedThenDeleted(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupRouter(db)

	fantasy := testutil.SeedGenre(t, db, "Fantasy")
	author := testutil.SeedAuthor(t, db, "Ursula", "LeGuin")
	book := testutil.SeedBook(t, db, author, "Earthsea", fantasy)

	w := doPostForm(router, fantasy.URL()+"/delete", url.Values{})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}
	resp := decode[GenreDeleteResponse](t, w)
	if resp.Status != "blocked" || len(resp.Books) != 1 || resp.Books[0].ID != book.ID {
		t.Fatalf("unexpected blocked response: %+v", resp)
	}

	if err := db.Model(&book).Association("Genres").Clear(); err != nil {
		t.Fatalf("failed to unlink genre: %v", err)
	}

	w = doGet(router, fantasy.URL()+"/delete")
	if got := decode[GenreDeleteResponse](t, w); got.Status != "permitted" {
		t.Fatalf("expected permitted confirmation, got %q", got.Status)
	}

	w = doPostForm(router, fantasy.URL()+"/delete", url.Values{})
	expectRedirect(t, w, "/catalog/genres/")

	var count int64
	db.Model(&model.Genre{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected genre deleted, got %d", count)
	}
}
