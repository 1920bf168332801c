package rest

import (
	"context"
	"net/http"

	"ivolexMarket/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	AnalyticsHandler struct {
		analyticsService AnalyticsService
	}

	AnalyticsService interface {
		GetUserAnalytics(ctx context.Context, sessionID string) (domain.UserAnalytics, error)
	}
)

func NewAnalyticsHandler(svc AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: svc,
	}
}

// GET /api/v1/analytics
func (h *AnalyticsHandler) GetUserAnalytics(c echo.Context) error {
	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing session"})
	}

	snapshot, err := h.analyticsService.GetUserAnalytics(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(snapshot))
}
