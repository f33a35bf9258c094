package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/impressmydate/backend/internal/model"
	"github.com/impressmydate/backend/internal/repository"
)

// ProfileHandler reads and writes the caller's saved planning preferences.
type ProfileHandler struct {
	Profiles *repository.ProfileRepo
}

func NewProfileHandler(r *repository.ProfileRepo) *ProfileHandler {
	return &ProfileHandler{Profiles: r}
}

type profileReq struct {
	Location string   `json:"location"`
	Budget   string   `json:"budget"`
	Dietary  []string `json:"dietary"`
	Vibes    []string `json:"vibes"`
}

// Get returns the saved profile, or an empty one if the user never saved.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Profiles.GetByUser(ctx, userID)
	if err == repository.ErrNotFound {
		return c.JSON(http.StatusOK, model.UserProfile{
			UserID:  userID,
			Dietary: []string{},
			Vibes:   []string{},
		})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// Put upserts the profile.  Budget must be one of the known price tiers.
func (h *ProfileHandler) Put(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Budget = strings.TrimSpace(req.Budget)
	if req.Budget != "" && !model.ValidBudget(req.Budget) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget must be $, $$, $$$ or $$$$"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p := &model.UserProfile{
		UserID:   userID,
		Location: strings.TrimSpace(req.Location),
		Budget:   req.Budget,
		Dietary:  req.Dietary,
		Vibes:    req.Vibes,
	}
	if err := h.Profiles.Upsert(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, p)
}
