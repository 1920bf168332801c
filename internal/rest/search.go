package rest

import (
	"context"
	"net/http"

	"ivolexMarket/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	SearchHandler struct {
		validate      *validator.Validate
		searchService SearchService
	}

	SearchService interface {
		GetSearchRecommendations(ctx context.Context, sessionID string, query string) ([]domain.ScoredProduct, error)
		GetAdvancedSearchRecommendations(ctx context.Context, sessionID string, query string, sc *domain.SearchContext) ([]domain.ScoredProduct, error)
	}

	SearchQuery struct {
		Q string `query:"q" validate:"required"`
	}

	AdvancedSearchQuery struct {
		Q        string  `query:"q" validate:"required"`
		MinPrice float64 `query:"min_price" validate:"gte=0"`
		MaxPrice float64 `query:"max_price" validate:"gte=0"`
	}
)

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{
		validate:      validator.New(),
		searchService: svc,
	}
}

// GET /api/v1/search?q=...
func (h *SearchHandler) Search(c echo.Context) error {
	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing session"})
	}

	var q SearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	hits, err := h.searchService.GetSearchRecommendations(c.Request().Context(), sessionID, q.Q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(hits))
}

// GET /api/v1/search/advanced?q=...&min_price=...&max_price=...
func (h *SearchHandler) AdvancedSearch(c echo.Context) error {
	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing session"})
	}

	var q AdvancedSearchQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var sc *domain.SearchContext
	if q.MaxPrice > 0 {
		sc = &domain.SearchContext{MinPrice: q.MinPrice, MaxPrice: q.MaxPrice}
	}

	hits, err := h.searchService.GetAdvancedSearchRecommendations(c.Request().Context(), sessionID, q.Q, sc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(hits))
}
