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

type BookInstanceHandler struct {
	svc    *catalog.Service
	logger *slog.Logger
}

func NewBookInstanceHandler(svc *catalog.Service, logger *slog.Logger) *BookInstanceHandler {
	return &BookInstanceHandler{svc: svc, logger: logger}
}

func (h *BookInstanceHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET(listPath(model.KindBookInstance), h.ListBookInstances)

	bi := r.Group("/" + string(model.KindBookInstance))
	{
		bi.GET("/create", h.CreateBookInstanceForm)
		bi.POST("/create", h.CreateBookInstance)
		bi.GET("/:id", h.GetBookInstance)
		bi.GET("/:id/update", h.UpdateBookInstanceForm)
		bi.POST("/:id/update", h.UpdateBookInstance)
		bi.GET("/:id/delete", h.DeleteBookInstanceForm)
		bi.POST("/:id/delete", h.DeleteBookInstance)
	}
}

// ListBookInstances godoc
// @Summary      List book copies
// @Description  Every copy with its book, ordered by book title ignoring case
// @Tags         bookinstances
// @Produce      json
// @Success      200  {object}  BookInstanceListResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /bookinstances/ [get]
func (h *BookInstanceHandler) ListBookInstances(c *gin.Context) {
	instances, err := h.svc.ListInstances(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "BOOKINSTANCE_LIST_FAILED", "failed to list book instances", err)
		return
	}

	c.JSON(http.StatusOK, BookInstanceListResponse{
		Title: "Book Instance List",
		Data:  toBookInstances(instances),
	})
}

// GetBookInstance godoc
// @Summary      Get book copy by ID
// @Description  An unknown copy redirects to the list
// @Tags         bookinstances
// @Produce      json
// @Param        id   path      string                    true  "Book instance ID (UUID)"
// @Success      200  {object}  BookInstanceDetailResponse
// @Success      302  "Book instance not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /bookinstance/{id} [get]
func (h *BookInstanceHandler) GetBookInstance(c *gin.Context) {
	id, ok := parseID(c, "BOOKINSTANCE_INVALID_ID", "invalid book instance id")
	if !ok {
		return
	}

	bi, err := h.svc.Instance(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			redirect(c, model.ListURL(model.KindBookInstance))
			return
		}
		serverError(c, h.logger, "BOOKINSTANCE_FETCH_FAILED", "failed to fetch book instance", err)
		return
	}

	title := "Book:"
	if bi.Book != nil {
		title = "Book: " + bi.Book.Title
	}

	c.JSON(http.StatusOK, BookInstanceDetailResponse{
		Title: title,
		Data:  toBookInstance(*bi),
	})
}

// CreateBookInstanceForm godoc
// @Summary      Book copy create form
// @Tags         bookinstances
// @Produce      json
// @Success      200  {object}  BookInstanceFormResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /bookinstance/create [get]
func (h *BookInstanceHandler) CreateBookInstanceForm(c *gin.Context) {
	books, err := h.svc.InstanceBooks(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "BOOKINSTANCE_FORM_FAILED", "failed to load book instance form", err)
		return
	}

	c.JSON(http.StatusOK, instanceFormResponse("Create BookInstance", nil, books, nil))
}

// CreateBookInstance godoc
// @Summary      Create a book copy
// @Description  status defaults to Maintenance
// @Tags         bookinstances
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        payload  body      validation.BookInstanceForm  true  "Copy to create"
// @Success      302      "Redirect to the copy"
// @Failure      400      {object}  validation.ErrorResponse     "Malformed body"
// @Failure      422      {object}  BookInstanceFormResponse     "Validation error"
// @Failure      500      {object}  validation.ErrorResponse     "Internal server error"
// @Router       /bookinstance/create [post]
func (h *BookInstanceHandler) CreateBookInstance(c *gin.Context) {
	var form validation.BookInstanceForm
	if !validation.Bind(c, &form) {
		return
	}

	res := validation.CheckBookInstance(form)
	if !res.Valid() {
		h.invalidInstance(c, "Create BookInstance", res)
		return
	}

	bi, err := h.svc.CreateInstance(c.Request.Context(), res.Record)
	if err != nil {
		serverError(c, h.logger, "BOOKINSTANCE_CREATE_FAILED", "failed to create book instance", err)
		return
	}

	redirect(c, bi.URL())
}

// UpdateBookInstanceForm godoc
// @Summary      Book copy update form
// @Tags         bookinstances
// @Produce      json
// @Param        id   path      string                    true  "Book instance ID (UUID)"
// @Success      200  {object}  BookInstanceFormResponse
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse  "Book instance not found"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /bookinstance/{id}/update [get]
func (h *BookInstanceHandler) UpdateBookInstanceForm(c *gin.Context) {
	id, ok := parseID(c, "BOOKINSTANCE_INVALID_ID", "invalid book instance id")
	if !ok {
		return
	}

	edit, err := h.svc.InstanceEdit(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "BOOKINSTANCE_NOT_FOUND", "book instance not found")
			return
		}
		serverError(c, h.logger, "BOOKINSTANCE_FETCH_FAILED", "failed to fetch book instance", err)
		return
	}

	c.JSON(http.StatusOK, instanceFormResponse("Update BookInstance", instanceForm(edit.Instance), edit.Books, nil))
}

// UpdateBookInstance godoc
// @Summary      Update a book copy
// @Tags         bookinstances
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        id       path      string                       true  "Book instance ID (UUID)"
// @Param        payload  body      validation.BookInstanceForm  true  "Copy fields"
// @Success      302      "Redirect to the copy"
// @Failure      400      {object}  validation.ErrorResponse     "Invalid ID or malformed body"
// @Failure      404      {object}  validation.ErrorResponse     "Book instance not found"
// @Failure      422      {object}  BookInstanceFormResponse     "Validation error"
// @Failure      500      {object}  validation.ErrorResponse     "Internal server error"
// @Router       /bookinstance/{id}/update [post]
func (h *BookInstanceHandler) UpdateBookInstance(c *gin.Context) {
	id, ok := parseID(c, "BOOKINSTANCE_INVALID_ID", "invalid book instance id")
	if !ok {
		return
	}

	var form validation.BookInstanceForm
	if !validation.Bind(c, &form) {
		return
	}

	res := validation.CheckBookInstance(form)
	if !res.Valid() {
		h.invalidInstance(c, "Update BookInstance", res)
		return
	}

	bi, err := h.svc.UpdateInstance(c.Request.Context(), id, res.Record)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(c, http.StatusNotFound, "BOOKINSTANCE_NOT_FOUND", "book instance not found")
			return
		}
		serverError(c, h.logger, "BOOKINSTANCE_UPDATE_FAILED", "failed to update book instance", err)
		return
	}

	redirect(c, bi.URL())
}

// DeleteBookInstanceForm godoc
// @Summary      Book copy delete confirmation
// @Tags         bookinstances
// @Produce      json
// @Param        id   path      string                      true  "Book instance ID (UUID)"
// @Success      200  {object}  BookInstanceDeleteResponse
// @Success      302  "Book instance not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse    "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse    "Internal server error"
// @Router       /bookinstance/{id}/delete [get]
func (h *BookInstanceHandler) DeleteBookInstanceForm(c *gin.Context) {
	id, ok := parseID(c, "BOOKINSTANCE_INVALID_ID", "invalid book instance id")
	if !ok {
		return
	}

	d, err := h.svc.InstanceDeletion(c.Request.Context(), id)
	if err != nil {
		serverError(c, h.logger, "BOOKINSTANCE_FETCH_FAILED", "failed to fetch book instance", err)
		return
	}
	if d.Status == catalog.DeleteNotFound {
		redirect(c, model.ListURL(model.KindBookInstance))
		return
	}

	c.JSON(http.StatusOK, instanceDeleteResponse(d))
}

// DeleteBookInstance godoc
// @Summary      Delete a book copy
// @Tags         bookinstances
// @Produce      json
// @Param        id   path      string                    true  "Book instance ID (UUID)"
// @Success      302  "Deleted or not found, redirect to the list"
// @Failure      400  {object}  validation.ErrorResponse  "Invalid ID"
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       /bookinstance/{id}/delete [post]
func (h *BookInstanceHandler) DeleteBookInstance(c *gin.Context) {
	id, ok := parseID(c, "BOOKINSTANCE_INVALID_ID", "invalid book instance id")
	if !ok {
		return
	}

	if _, err := h.svc.DeleteInstance(c.Request.Context(), id); err != nil {
		serverError(c, h.logger, "BOOKINSTANCE_DELETE_FAILED", "failed to delete book instance", err)
		return
	}

	redirect(c, model.ListURL(model.KindBookInstance))
}

func (h *BookInstanceHandler) invalidInstance(c *gin.Context, title string, res validation.Result[validation.BookInstanceRecord, validation.BookInstanceForm]) {
	books, err := h.svc.InstanceBooks(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "BOOKINSTANCE_FORM_FAILED", "failed to load book instance form", err)
		return
	}

	c.JSON(http.StatusUnprocessableEntity, instanceFormResponse(title, &res.Original, books, res.Errors))
}

func instanceFormResponse(title string, form *validation.BookInstanceForm, books []model.Book, errs []validation.FieldError) BookInstanceFormResponse {
	return BookInstanceFormResponse{
		Title:    title,
		Data:     form,
		Books:    toBookSummaries(books),
		Statuses: model.Statuses,
		Errors:   errs,
	}
}

func instanceDeleteResponse(d catalog.InstanceDeletion) BookInstanceDeleteResponse {
	res := BookInstanceDeleteResponse{
		Title:  "Delete BookInstance",
		Status: d.Status.String(),
	}
	if d.Parent != nil {
		bi := toBookInstance(*d.Parent)
		res.Data = &bi
	}
	return res
}
