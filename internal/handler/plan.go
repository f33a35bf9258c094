package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/impressmydate/backend/internal/model"
	"github.com/impressmydate/backend/internal/planner"
	"github.com/impressmydate/backend/internal/repository"
)

// PlanHandler exposes the planning session flow over HTTP.  All state
// transitions go through the orchestrator; the handler only binds bodies,
// resolves the user and maps errors to status codes.
type PlanHandler struct {
	Planner  *planner.Orchestrator
	Profiles *repository.ProfileRepo
}

func NewPlanHandler(p *planner.Orchestrator, profiles *repository.ProfileRepo) *PlanHandler {
	return &PlanHandler{Planner: p, Profiles: profiles}
}

type startPlanReq struct {
	Prompt string `json:"prompt"`
}

type selectRestaurantReq struct {
	Restaurant   model.Business `json:"restaurant"`
	ReservedTime string         `json:"reserved_time"`
}

type selectActivitiesReq struct {
	Activities []model.Business `json:"activities"`
	Skip       bool             `json:"skip"`
}

type confirmReq struct {
	DateLabel string `json:"date_label"`
}

// planError maps orchestrator/repository errors onto HTTP responses.
func planError(c echo.Context, err error) error {
	switch err {
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your session"})
	case planner.ErrNoRestaurant:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no restaurant selected"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "planning failed"})
}

// Start creates a planning session from a free-form prompt and returns the
// first round of restaurant suggestions.  Saved profile preferences fill in
// whatever the prompt leaves out.
func (h *PlanHandler) Start(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req startPlanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "prompt required"})
	}

	// AI round trips can take a while; budget generously beyond the DB norm.
	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	var prefs planner.Preferences
	if p, err := h.Profiles.GetByUser(ctx, userID); err == nil {
		prefs.Location = p.Location
		prefs.Budget = p.Budget
	}

	res, err := h.Planner.Start(ctx, userID, req.Prompt, prefs)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"session_id":  res.SessionID,
		"stage":       res.Stage,
		"restaurants": res.Restaurants,
	})
}

// SelectRestaurant locks in one restaurant and a reservation slot, then
// returns nearby activity suggestions for the next stage.
func (h *PlanHandler) SelectRestaurant(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var req selectRestaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Restaurant.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	res, err := h.Planner.SelectRestaurant(ctx, userID, sessionID, req.Restaurant, req.ReservedTime)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"stage":      res.Stage,
		"activities": res.Activities,
	})
}

// SelectActivities records the chosen activities (or an explicit skip) and
// moves the session to the summary stage.
func (h *PlanHandler) SelectActivities(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var req selectActivitiesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stage, err := h.Planner.SelectActivities(ctx, userID, sessionID, req.Activities, req.Skip)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"stage": stage})
}

// Confirm turns the session into a saved itinerary and discards the session.
func (h *PlanHandler) Confirm(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var req confirmReq
	// Body is optional on confirm.
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Planner.Confirm(ctx, userID, sessionID, strings.TrimSpace(req.DateLabel))
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

// Reset abandons the session and all of its stored options.
func (h *PlanHandler) Reset(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Planner.Reset(ctx, userID, sessionID); err != nil {
		return planError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetState returns the session row plus any stored option lists so a client
// can resume mid-flow.
func (h *PlanHandler) GetState(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	state, err := h.Planner.GetState(ctx, userID, sessionID)
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"session":     state.Session,
		"restaurants": state.Restaurants,
		"activities":  state.Activities,
	})
}
