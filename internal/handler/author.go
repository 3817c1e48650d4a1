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

type AuthorHandler struct {
	svc    *catalog.Service
	logger *slog.Logger
}

func NewAuthorHandler(svc *catalog.Service, logger *slog.Logger) *AuthorHandler {
	return &AuthorHandler{svc: svc, logger: logger}
}

func (h *AuthorHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(listPath(model.KindAuthor), h.ListAuthors)

	author := r.Group("/" + string(model.KindAuthor))
	{
		author.GET("/create", h.CreateAuthorForm)
		author.POST("/create", h.CreateAuthor)
		author.GET("/:id", h.GetAuthor)
		author.GET("/:id/update", h.UpdateAuthorForm)
		author.POST("/:id/update", h.UpdateAuthor)
		author.GET("/:id/delete", h.DeleteAuthorForm)
		author.POST("/:id/delete", h.DeleteAuthor)
	}
}

// ListAuthors godoc
// @Summary      List authors
// @Description  All authors ordered by family name
// @Tags         authors
// @Produce      json
// @Success      200  {object}  AuthorListResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /authors/ [get]
func (h *AuthorHandler) ListAuthors(c *gin.Context) {
	authors, err := h.svc.ListAuthors(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "AUTHOR_LIST_FAILED", "failed to list authors", err)
		return
	}

	c.JSON(http.StatusOK, AuthorListResponse{
		Title: "Author List",
		Data:  toAuthors(authors),
	})
}

// GetAuthor godoc
// @Summary      Get author by ID
// @Description  An author together with all of their books
// @Tags         authors
// @Produce      json
// @Param        id   path      string                    true  "Author ID (UUID)"
// @Success      200  {object}  AuthorDetailResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /author/{id} [get]
func (h *AuthorHandler) GetAuthor(c *gin.Context) {
	id, ok := parseID(c, "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	detail, err := h.svc.AuthorDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
			return
		}
		serverError(c, h.logger, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
		return
	}

	c.JSON(http.StatusOK, AuthorDetailResponse{
		Title: "Author Detail",
		Data:  toAuthor(detail.Author),
		Books: toBookSummaries(detail.Books),
	})
}

// CreateAuthorForm godoc
// @Summary      Author create form
// @Tags         authors
// @Produce      json
// @Success      200  {object}  AuthorFormResponse
// @Router       /author/create [get]
func (h *AuthorHandler) CreateAuthorForm(c *gin.Context) {
	c.JSON(http.StatusOK, AuthorFormResponse{Title: "Create Author"})
}

// CreateAuthor godoc
// @Summary      Create an author
// @Description  Validates the submission and redirects to the new author
// @Tags         authors
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        payload  body      validation.AuthorForm     true  "Author to create"
// @Success      302      "Redirect to the author"
// @Failure      400      {object}  validation.ErrorResponse  "Malformed body"
// @Failure      422      {object}  AuthorFormResponse        "Validation error"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /author/create [post]
func (h *AuthorHandler) CreateAuthor(c *gin.Context) {
	var form validation.AuthorForm
	if !validation.Bind(c, &form) {
		return
	}

	res := validation.CheckAuthor(form)
	if !res.Valid() {
		c.JSON(http.StatusUnprocessableEntity, AuthorFormResponse{
			Title:  "Create Author",
			Data:   &res.Original,
			Errors: res.Errors,
		})
		return
	}

	author, err := h.svc.CreateAuthor(c.Request.Context(), res.Record)
	if err != nil {
		serverError(c, h.logger, "AUTHOR_CREATE_FAILED", "failed to create author", err)
		return
	}

	redirect(c, author.URL())
}

// UpdateAuthorForm godoc
// @Summary      Author update form
// @Description  The update form seeded with the stored author
// @Tags         authors
// @Produce      json
// @Param        id   path      string                    true  "Author ID (UUID)"
// @Success      200  {object}  AuthorFormResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Author not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /author/{id}/update [get]
func (h *AuthorHandler) UpdateAuthorForm(c *gin.Context) {
	id, ok := parseID(c, "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	author, err := h.svc.Author(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
			return
		}
		serverError(c, h.logger, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
		return
	}

	c.JSON(http.StatusOK, AuthorFormResponse{
		Title: "Update Author",
		Data:  authorForm(*author),
	})
}

// UpdateAuthor godoc
// @Summary      Update an author
// @Description  Replaces the author under the same ID and redirects to it
// @Tags         authors
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id       path      string                    true  "Author ID (UUID)"
// @Param        payload  body      validation.AuthorForm     true  "Author fields"
// @Success      302      "Redirect to the author"
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or malformed body"
// @Failure      404      {object}  validation.ErrorResponse  "Author not found"
// @Failure      422      {object}  AuthorFormResponse        "Validation error"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /author/{id}/update [post]
func (h *AuthorHandler) UpdateAuthor(c *gin.Context) {
	id, ok := parseID(c, "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	var form validation.AuthorForm
	if !validation.Bind(c, &form) {
		return
	}

	res := validation.CheckAuthor(form)
	if !res.Valid() {
		c.JSON(http.StatusUnprocessableEntity, AuthorFormResponse{
			Title:  "Update Author",
			Data:   &res.Original,
			Errors: res.Errors,
		})
		return
	}

	author, err := h.svc.UpdateAuthor(c.Request.Context(), id, res.Record)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "AUTHOR_NOT_FOUND", "author not found")
			return
		}
		serverError(c, h.logger, "AUTHOR_UPDATE_FAILED", "failed to update author", err)
		return
	}

	redirect(c, author.URL())
}

// DeleteAuthorForm godoc
// @Summary      Author delete confirmation
// @Description  The author with the books that would block the delete
// @Tags         authors
// @Produce      json
// @Param        id   path      string                    true  "Author ID (UUID)"
// @Success      200  {object}  AuthorDeleteResponse
// @Success      302  "Author not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /author/{id}/delete [get]
func (h *AuthorHandler) DeleteAuthorForm(c *gin.Context) {
	id, ok := parseID(c, "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	d, err := h.svc.AuthorDeletion(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.logger, "AUTHOR_FETCH_FAILED", "failed to fetch author", err)
		return
	}
	if d.Status == catalog.DeleteNotFound {
		redirect(c, model.ListURL(model.KindAuthor))
		return
	}

	c.JSON(http.StatusOK, authorDeleteResponse(d))
}

// DeleteAuthor godoc
// @Summary      Delete an author
// @Description  Deletes an author without books; an author with books is left untouched
// @Tags         authors
// @Produce      json
// @Param        id   path      string                    true  "Author ID (UUID)"
// @Success      302  "Deleted or not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      409  {object}  AuthorDeleteResponse      "Author still has books"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /author/{id}/delete [post]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	id, ok := parseID(c, "AUTHOR_INVALID_ID", "invalid author id")
	if !ok {
		return
	}

	d, err := h.svc.DeleteAuthor(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.logger, "AUTHOR_DELETE_FAILED", "failed to delete author", err)
		return
	}
	if d.Status == catalog.DeleteBlocked {
		c.JSON(http.StatusConflict, authorDeleteResponse(d))
		return
	}

	redirect(c, model.ListURL(model.KindAuthor))
}

func authorDeleteResponse(d catalog.AuthorDeletion) AuthorDeleteResponse {
	res := AuthorDeleteResponse{
		Title:  "Delete Author",
		Status: d.Status.String(),
		Books:  toBookSummaries(d.Dependents),
	}
	if d.Parent != nil {
		a := toAuthor(*d.Parent)
		res.Data = &a
	}
	return res
}
