package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/catalog"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/model"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/validation"
)

type BookHandler struct {
	svc    *catalog.Service
	logger *slog.Logger
}

func NewBookHandler(svc *catalog.Service, logger *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, logger: logger}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(listPath(model.KindBook), h.ListBooks)

	book := r.Group("/" + string(model.KindBook))
	{
		book.GET("/create", h.CreateBookForm)
		book.POST("/create", h.CreateBook)
		book.GET("/:id", h.GetBook)
		book.GET("/:id/update", h.UpdateBookForm)
		book.POST("/:id/update", h.UpdateBook)
		book.GET("/:id/delete", h.DeleteBookForm)
		book.POST("/:id/delete", h.DeleteBook)
	}
}

// ListBooks godoc
// @Summary      List books
// @Description  Titles and authors ordered by title
// @Tags         books
// @Produce      json
// @Success      200  {object}  BookListResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /books/ [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.svc.ListBooks(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "BOOK_LIST_FAILED", "failed to list books", err)
		return
	}

	c.JSON(http.StatusOK, BookListResponse{
		Title: "Book List",
		Data:  toBookSummaries(books),
	})
}

// GetBook godoc
// @Summary      Get book by ID
// @Description  A book with its author, genres and copies
// @Tags         books
// @Produce      json
// @Param        id   path      string                    true  "Book ID (UUID)"
// @Success      200  {object}  BookDetailResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /book/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c, "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	detail, err := h.svc.BookDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		serverError(c, h.logger, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}

	c.JSON(http.StatusOK, BookDetailResponse{
		Title:     detail.Book.Title,
		Data:      toBook(detail.Book),
		Instances: toBookInstances(detail.Instances),
	})
}

// CreateBookForm godoc
// @Summary      Book create form
// @Description  Every author and genre a new book can reference
// @Tags         books
// @Produce      json
// @Success      200  {object}  BookFormResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /book/create [get]
func (h *BookHandler) CreateBookForm(c *gin.Context) {
	opts, err := h.svc.BookOptions(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "BOOK_FORM_FAILED", "failed to load book form", err)
		return
	}

	c.JSON(http.StatusOK, bookFormResponse("Create Book", nil, opts, nil))
}

// CreateBook godoc
// @Summary      Create a book
// @Description  genre may be omitted, a single ID or a list of IDs
// @Tags         books
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        payload  body      validation.BookForm       true  "Book to create"
// @Success      302      "Redirect to the book"
// @Failure      400      {object}  validation.ErrorResponse  "Malformed body"
// @Failure      422      {object}  BookFormResponse          "Validation error"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /book/create [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var form validation.BookForm
	if !validation.Bind(c, &form) {
		return
	}

	res := validation.CheckBook(form)
	if !res.Valid() {
		h.invalidBook(c, "Create Book", res)
		return
	}

	book, err := h.svc.CreateBook(c.Request.Context(), res.Record)
	if err != nil {
		serverError(c, h.logger, "BOOK_CREATE_FAILED", "failed to create book", err)
		return
	}

	redirect(c, book.URL())
}

// UpdateBookForm godoc
// @Summary      Book update form
// @Description  The stored book with its genres checked among all genres
// @Tags         books
// @Produce      json
// @Param        id   path      string                    true  "Book ID (UUID)"
// @Success      200  {object}  BookFormResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /book/{id}/update [get]
func (h *BookHandler) UpdateBookForm(c *gin.Context) {
	id, ok := parseID(c, "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	edit, err := h.svc.BookEdit(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		serverError(c, h.logger, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}

	c.JSON(http.StatusOK, bookFormResponse("Update Book", bookForm(edit.Book), edit.BookOptions, nil))
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Replaces the book and its genres under the same ID
// @Tags         books
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id       path      string                    true  "Book ID (UUID)"
// @Param        payload  body      validation.BookForm       true  "Book fields"
// @Success      302      "Redirect to the book"
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or malformed body"
// @Failure      404      {object}  validation.ErrorResponse  "Book not found"
// @Failure      422      {object}  BookFormResponse          "Validation error"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /book/{id}/update [post]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c, "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	var form validation.BookForm
	if !validation.Bind(c, &form) {
		return
	}

	res := validation.CheckBook(form)
	if !res.Valid() {
		h.invalidBook(c, "Update Book", res)
		return
	}

	book, err := h.svc.UpdateBook(c.Request.Context(), id, res.Record)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "BOOK_NOT_FOUND", "book not found")
			return
		}
		serverError(c, h.logger, "BOOK_UPDATE_FAILED", "failed to update book", err)
		return
	}

	redirect(c, book.URL())
}

// DeleteBookForm godoc
// @Summary      Book delete confirmation
// @Tags         books
// @Produce      json
// @Param        id   path      string                    true  "Book ID (UUID)"
// @Success      200  {object}  BookDeleteResponse
// @Success      302  "Book not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /book/{id}/delete [get]
func (h *BookHandler) DeleteBookForm(c *gin.Context) {
	id, ok := parseID(c, "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	d, err := h.svc.BookDeletion(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.logger, "BOOK_FETCH_FAILED", "failed to fetch book", err)
		return
	}
	if d.Status == catalog.DeleteNotFound {
		redirect(c, model.ListURL(model.KindBook))
		return
	}

	c.JSON(http.StatusOK, bookDeleteResponse(d))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Deletes a book without copies
// @Tags         books
// @Produce      json
// @Param        id   path      string                    true  "Book ID (UUID)"
// @Success      302  "Deleted or not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      409  {object}  BookDeleteResponse        "Book still has copies"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /book/{id}/delete [post]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c, "BOOK_INVALID_ID", "invalid book id")
	if !ok {
		return
	}

	d, err := h.svc.DeleteBook(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.logger, "BOOK_DELETE_FAILED", "failed to delete book", err)
		return
	}
	if d.Status == catalog.DeleteBlocked {
		c.JSON(http.StatusConflict, bookDeleteResponse(d))
		return
	}

	redirect(c, model.ListURL(model.KindBook))
}

// invalidBook answers 422 with the submission and the form's option lists.
func (h *BookHandler) invalidBook(c *gin.Context, title string, res validation.Result[validation.BookRecord, validation.BookForm]) {
	opts, err := h.svc.BookOptions(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "BOOK_FORM_FAILED", "failed to load book form", err)
		return
	}

	c.JSON(http.StatusUnprocessableEntity, bookFormResponse(title, &res.Original, opts, res.Errors))
}

func bookFormResponse(title string, form *validation.BookForm, opts catalog.BookOptions, errs []validation.FieldError) BookFormResponse {
	var checked []string
	if form != nil {
		checked = form.Genre
	}

	return BookFormResponse{
		Title:   title,
		Data:    form,
		Authors: toAuthorSummaries(opts.Authors),
		Genres:  toGenreOptions(opts.Genres, checked),
		Errors:  errs,
	}
}

func bookDeleteResponse(d catalog.BookDeletion) BookDeleteResponse {
	res := BookDeleteResponse{
		Title:     "Delete Book",
		Status:    d.Status.String(),
		Instances: toBookInstances(d.Dependents),
	}
	if d.Parent != nil {
		b := toBook(*d.Parent)
		res.Data = &b
	}
	return res
}
