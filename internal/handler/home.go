package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfshare/apps/catalog/internal/catalog"
)

type HomeHandler struct {
	svc    *catalog.Service
	logger *slog.Logger
}

func NewHomeHandler(svc *catalog.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{svc: svc, logger: logger}
}

func (h *HomeHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Home)
}

// Home godoc
// @Summary      Catalog home
// @Description  Counts of books, copies, available copies, authors and genres
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  HomeResponse
// @Failure      500  {object}  validation.ErrorResponse  "Internal server error"
// @Router       / [get]
func (h *HomeHandler) Home(c *gin.Context) {
	counts, err := h.svc.Counts(c.Request.Context())
	if err != nil {
		serverError(c, h.logger, "HOME_COUNTS_FAILED", "failed to count catalog records", err)
		return
	}

	c.JSON(http.StatusOK, HomeResponse{
		Title: "Local Library Home",
		Data: Counts{
			BookCount:                  counts.Books,
			BookInstanceCount:          counts.BookInstances,
			BookInstanceAvailableCount: counts.AvailableBookInstances,
			AuthorCount:                counts.Authors,
			GenreCount:                 counts.Genres,
		},
	})
}
