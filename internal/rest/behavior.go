package rest

import (
	"context"
	"net/http"
	"strconv"

	"ivolexMarket/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

type (
	BehaviorHandler struct {
		validate        *validator.Validate
		behaviorService BehaviorService
		eventLog        EventLogReader
	}

	BehaviorService interface {
		Record(ctx context.Context, sessionID string, action domain.BehaviorAction, productID uint64, meta domain.EventMetadata) (domain.BehaviorEvent, error)
		History(ctx context.Context, sessionID string) ([]domain.BehaviorEvent, error)
	}

	// EventLogReader reads back the durable event log, as opposed to the
	// engine's in-memory history window.
	EventLogReader interface {
		FindBySession(ctx context.Context, sessionID string, limit int) ([]domain.BehaviorEventRecord, error)
	}

	RecordEventRequest struct {
		Action      string  `json:"action" validate:"required"`
		ProductID   uint64  `json:"product_id"`
		Page        string  `json:"page"`
		Referrer    string  `json:"referrer"`
		DurationSec float64 `json:"duration_sec"`
		ScrollPct   float64 `json:"scroll_pct" validate:"gte=0,lte=100"`
	}
)

func NewBehaviorHandler(svc BehaviorService, eventLog EventLogReader) *BehaviorHandler {
	return &BehaviorHandler{
		validate:        validator.New(),
		behaviorService: svc,
		eventLog:        eventLog,
	}
}

// POST /api/v1/behavior/events
func (h *BehaviorHandler) RecordEvent(c echo.Context) error {
	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing session"})
	}

	var req RecordEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	meta := domain.EventMetadata{
		Page:        req.Page,
		Referrer:    req.Referrer,
		DurationSec: req.DurationSec,
		ScrollPct:   req.ScrollPct,
	}
	if sc, ok := c.Get("session").(domain.SessionContext); ok {
		meta.Device = sc.Device
		meta.Platform = sc.Platform
		meta.Locale = sc.Locale
	}

	event, err := h.behaviorService.Record(
		c.Request().Context(),
		sessionID,
		domain.BehaviorAction(req.Action),
		req.ProductID,
		meta,
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(event))
}

// GET /api/v1/behavior/history
func (h *BehaviorHandler) GetHistory(c echo.Context) error {
	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing session"})
	}

	history, err := h.behaviorService.History(c.Request().Context(), sessionID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(history))
}

// GET /api/v1/behavior/events?limit=...
func (h *BehaviorHandler) GetEventLog(c echo.Context) error {
	sessionID, ok := c.Get("session_id").(string)
	if !ok || sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "missing session"})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	records, err := h.eventLog.FindBySession(c.Request().Context(), sessionID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}
