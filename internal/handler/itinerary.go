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

// ItineraryHandler serves saved itineraries: listing, detail, post-date
// feedback and the public share view.
type ItineraryHandler struct {
	Itineraries *repository.ItineraryRepo
}

func NewItineraryHandler(r *repository.ItineraryRepo) *ItineraryHandler {
	return &ItineraryHandler{Itineraries: r}
}

type feedbackReq struct {
	Rating  string `json:"rating"`
	Comment string `json:"comment"`
}

func itineraryError(c echo.Context, err error) error {
	switch err {
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "itinerary not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your itinerary"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
}

// List returns the caller's itineraries, newest first.
func (h *ItineraryHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Itineraries.ListByUser(ctx, userID)
	if err != nil {
		return itineraryError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"itineraries": items})
}

// Get returns one itinerary owned by the caller.
func (h *ItineraryHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid itinerary id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Itineraries.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return itineraryError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// Feedback records how the date went.  Saving feedback also flips the
// itinerary from upcoming to past.
func (h *ItineraryHandler) Feedback(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid itinerary id"})
	}
	var req feedbackReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Rating = strings.TrimSpace(req.Rating)
	if !model.ValidRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be great, meh or disaster"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Itineraries.SubmitFeedback(ctx, id, userID, req.Rating, strings.TrimSpace(req.Comment)); err != nil {
		return itineraryError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.StatusPast, "rating": req.Rating})
}

// Shared resolves an itinerary by its share token.  No auth: the token is
// the capability.  Feedback fields stay private to the owner.
func (h *ItineraryHandler) Shared(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid share token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	it, err := h.Itineraries.GetByShareToken(ctx, token)
	if err != nil {
		return itineraryError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"headline":      it.Headline,
		"date_label":    it.DateLabel,
		"restaurant":    it.Restaurant,
		"activities":    it.Activities,
		"timeline":      it.Timeline,
		"cost_estimate": it.CostEstimate,
	})
}
