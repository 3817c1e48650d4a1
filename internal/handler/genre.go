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

type GenreHandler struct {
	svc    *catalog.Service
	logger *slog.Logger
}

func NewGenreHandler(svc *catalog.Service, logger *slog.Logger) *GenreHandler {
	return &GenreHandler{svc: svc, logger: logger}
}

func (h *GenreHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(listPath(model.KindGenre), h.ListGenres)

	genre := r.Group("/" + string(model.KindGenre))
	{
		genre.GET("/create", h.CreateGenreForm)
		genre.POST("/create", h.CreateGenre)
		genre.GET("/:id", h.GetGenre)
		genre.GET("/:id/update", h.UpdateGenreForm)
		genre.POST("/:id/update", h.UpdateGenre)
		genre.GET("/:id/delete", h.DeleteGenreForm)
		genre.POST("/:id/delete", h.DeleteGenre)
	}
}

// ListGenres godoc
// @Summary      List genres
// @Description  All genres ordered by name
// @Tags         genres
// @Produce      json
// @Success      200  {object}  GenreListResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /genres/ [get]
func (h *GenreHandler) ListGenres(c *gin.Context) {
	genres, err := h.svc.ListGenres(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "GENRE_LIST_FAILED", "failed to list genres", err)
		return
	}

	c.JSON(http.StatusOK, GenreListResponse{
		Title: "Genre List",
		Data:  toGenres(genres),
	})
}

// GetGenre godoc
// @Summary      Get genre by ID
// @Description  A genre with its books. An unknown genre redirects to the list.
// @Tags         genres
// @Produce      json
// @Param        id   path      string                    true  "Genre ID (UUID)"
// @Success      200  {object}  GenreDetailResponse
// @Success      302  "Genre not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /genre/{id} [get]
func (h *GenreHandler) GetGenre(c *gin.Context) {
	id, ok := parseID(c, "GENRE_INVALID_ID", "invalid genre id")
	if !ok {
		return
	}

	detail, err := h.svc.GenreDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			redirect(c, model.ListURL(model.KindGenre))
			return
		}
		serverError(c, h.logger, "GENRE_FETCH_FAILED", "failed to fetch genre", err)
		return
	}

	c.JSON(http.StatusOK, GenreDetailResponse{
		Title: "Genre Detail",
		Data:  toGenre(detail.Genre),
		Books: toBookSummaries(detail.Books),
	})
}

// CreateGenreForm godoc
// @Summary      Genre create form
// @Tags         genres
// @Produce      json
// @Success      200  {object}  GenreFormResponse
// @Router       /genre/create [get]
func (h *GenreHandler) CreateGenreForm(c *gin.Context) {
	c.JSON(http.StatusOK, GenreFormResponse{Title: "Create Genre"})
}

// CreateGenre godoc
// @Summary      Create a genre
// @Description  Redirects to the new genre, or to the existing genre with the same name
// @Tags         genres
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        payload  body      validation.GenreForm      true  "Genre to create"
// @Success      302      "Redirect to the genre"
// @Failure      400      {object}  validation.ErrorResponse  "Malformed body"
// @Failure      422      {object}  GenreFormResponse         "Validation error"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /genre/create [post]
func (h *GenreHandler) CreateGenre(c *gin.Context) {
	var form validation.GenreForm
	if !validation.Bind(c, &form) {
		return
	}

	res := validation.CheckGenre(form)
	if !res.Valid() {
		c.JSON(http.StatusUnprocessableEntity, GenreFormResponse{
			Title:  "Create Genre",
			Data:   &res.Original,
			Errors: res.Errors,
		})
		return
	}

	genre, _, err := h.svc.CreateGenre(c.Request.Context(), res.Record)
	if err != nil {
		serverError(c, h.logger, "GENRE_CREATE_FAILED", "failed to create genre", err)
		return
	}

	redirect(c, genre.URL())
}

// UpdateGenreForm godoc
// @Summary      Genre update form
// @Tags         genres
// @Produce      json
// @Param        id   path      string                    true  "Genre ID (UUID)"
// @Success      200  {object}  GenreFormResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Genre not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /genre/{id}/update [get]
func (h *GenreHandler) UpdateGenreForm(c *gin.Context) {
	id, ok := parseID(c, "GENRE_INVALID_ID", "invalid genre id")
	if !ok {
		return
	}

	genre, err := h.svc.Genre(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "GENRE_NOT_FOUND", "genre not found")
			return
		}
		serverError(c, h.logger, "GENRE_FETCH_FAILED", "failed to fetch genre", err)
		return
	}

	c.JSON(http.StatusOK, GenreFormResponse{
		Title: "Update Genre",
		Data:  &validation.GenreForm{Name: genre.Name},
	})
}

// UpdateGenre godoc
// @Summary      Update a genre
// @Tags         genres
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id       path      string                    true  "Genre ID (UUID)"
// @Param        payload  body      validation.GenreForm      true  "Genre fields"
// @Success      302      "Redirect to the genre"
// @Failure      400      {object}  validation.ErrorResponse  "Invalid ID or malformed body"
// @Failure      404      {object}  validation.ErrorResponse  "Genre not found"
// @Failure      422      {object}  GenreFormResponse         "Validation error"
// @Failure      500      {object}  validation.ErrorResponse  "Internal server error"
// @Router       /genre/{id}/update [post]
func (h *GenreHandler) UpdateGenre(c *gin.Context) {
	id, ok := parseID(c, "GENRE_INVALID_ID", "invalid genre id")
	if !ok {
		return
	}

	var form validation.GenreForm
	if !validation.Bind(c, &form) {
		return
	}

	res := validation.CheckGenre(form)
	if !res.Valid() {
		c.JSON(http.StatusUnprocessableEntity, GenreFormResponse{
			Title:  "Update Genre",
			Data:   &res.Original,
			Errors: res.Errors,
		})
		return
	}

	genre, err := h.svc.UpdateGenre(c.Request.Context(), id, res.Record)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "GENRE_NOT_FOUND", "genre not found")
			return
		}
		serverError(c, h.logger, "GENRE_UPDATE_FAILED", "failed to update genre", err)
		return
	}

	redirect(c, genre.URL())
}

// DeleteGenreForm godoc
// @Summary      Genre delete confirmation
// @Tags         genres
// @Produce      json
// @Param        id   path      string                    true  "Genre ID (UUID)"
// @Success      200  {object}  GenreDeleteResponse
// @Success      302  "Genre not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /genre/{id}/delete [get]
func (h *GenreHandler) DeleteGenreForm(c *gin.Context) {
	id, ok := parseID(c, "GENRE_INVALID_ID", "invalid genre id")
	if !ok {
		return
	}

	d, err := h.svc.GenreDeletion(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.logger, "GENRE_FETCH_FAILED", "failed to fetch genre", err)
		return
	}
	if d.Status == catalog.DeleteNotFound {
		redirect(c, model.ListURL(model.KindGenre))
		return
	}

	c.JSON(http.StatusOK, genreDeleteResponse(d))
}

// DeleteGenre godoc
// @Summary      Delete a genre
// @Description  Deletes a genre no book is tagged with
// @Tags         genres
// @Produce      json
// @Param        id   path      string                    true  "Genre ID (UUID)"
// @Success      302  "Deleted or not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      409  {object}  GenreDeleteResponse       "Genre still has books"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /genre/{id}/delete [post]
func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	id, ok := parseID(c, "GENRE_INVALID_ID", "invalid genre id")
	if !ok {
		return
	}

	d, err := h.svc.DeleteGenre(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.logger, "GENRE_DELETE_FAILED", "failed to delete genre", err)
		return
	}
	if d.Status == catalog.DeleteBlocked {
		c.JSON(http.StatusConflict, genreDeleteResponse(d))
		return
	}

	redirect(c, model.ListURL(model.KindGenre))
}

func genreDeleteResponse(d catalog.GenreDeletion) GenreDeleteResponse {
	res := GenreDeleteResponse{
		Title:  "Delete Genre",
		Status: d.Status.String(),
		Books:  toBookSummaries(d.Dependents),
	}
	if d.Parent != nil {
		g := toGenre(*d.Parent)
		res.Data = &g
	}
	return res
}
