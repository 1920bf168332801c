package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ivolexMarket/app/echo-server/metrics"
	"ivolexMarket/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate    *validator.Validate
		recoService RecommendationService
	}

	RecommendationService interface {
		GetTrending(ctx context.Context) ([]domain.ScoredProduct, error)
		GetPersonalized(ctx context.Context, sessionID string) ([]domain.ScoredProduct, error)
		GetRelated(ctx context.Context, productID uint64) ([]domain.ScoredProduct, error)
		GetFrequentlyCoInteracted(ctx context.Context, productID uint64) ([]domain.ScoredProduct, error)
		GetCategoryBased(ctx context.Context, category string, excludeID uint64) ([]domain.ScoredProduct, error)
		GetCrossSell(ctx context.Context, cartIDs []uint64) ([]domain.ScoredProduct, error)
		GetUpsell(ctx context.Context, productID uint64) ([]domain.ScoredProduct, error)
	}

	CategoryQuery struct {
		Category  string `query:"category" validate:"required"`
		ExcludeID uint64 `query:"exclude_id"`
	}

	CrossSellRequest struct {
		CartIDs []uint64 `json:"cart_ids" validate:"required,min=1"`
	}
)

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:    validator.New(),
		recoService: svc,
	}
}

func (h *RecommendationHandler) observe(start time.Time) {
	metrics.RecoRequestLatency.Observe(time.Since(start).Seconds())
	metrics.RecoRequestsTotal.Inc()
}

// GET /api/v1/recommendations/trending
func (h *RecommendationHandler) Trending(c echo.Context) error {
	defer h.observe(time.Now())

	recs, err := h.recoService.GetTrending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/personalized
func (h *RecommendationHandler) Personalized(c echo.Context) error {
	defer h.observe(time.Now())

	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing session"})
	}

	recs, err := h.recoService.GetPersonalized(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func productIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// GET /api/v1/recommendations/related/:id
func (h *RecommendationHandler) Related(c echo.Context) error {
	defer h.observe(time.Now())

	productID, err := productIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	recs, err := h.recoService.GetRelated(c.Request().Context(), productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/co-interacted/:id
func (h *RecommendationHandler) FrequentlyCoInteracted(c echo.Context) error {
	defer h.observe(time.Now())

	productID, err := productIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	recs, err := h.recoService.GetFrequentlyCoInteracted(c.Request().Context(), productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/category?category=...&exclude_id=...
func (h *RecommendationHandler) CategoryBased(c echo.Context) error {
	defer h.observe(time.Now())

	var q CategoryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	recs, err := h.recoService.GetCategoryBased(c.Request().Context(), q.Category, q.ExcludeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// POST /api/v1/recommendations/cross-sell
func (h *RecommendationHandler) CrossSell(c echo.Context) error {
	defer h.observe(time.Now())

	var req CrossSellRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	recs, err := h.recoService.GetCrossSell(c.Request().Context(), req.CartIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/upsell/:id
func (h *RecommendationHandler) Upsell(c echo.Context) error {
	defer h.observe(time.Now())

	productID, err := productIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid product id"})
	}

	recs, err := h.recoService.GetUpsell(c.Request().Context(), productID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}
