package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketline/ticket-shop/internal/model"
	"github.com/ticketline/ticket-shop/internal/repository"
)

// EventHandler serves the read-only event catalog.
type EventHandler struct {
	Repo *repository.EventRepo
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(repo *repository.EventRepo) *EventHandler {
	if repo == nil {
		panic("nil repository passed to NewEventHandler")
	}
	return &EventHandler{Repo: repo}
}

// List handles GET /api/v1/event with the same filter/pagination shape as
// the ticket listing.
func (h *EventHandler) List(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	ids, err := idList(c.QueryParam("eventIds"))
	if err != nil {
		return badRequest(c, "invalid eventIds: "+err.Error(), nil)
	}
	startDate, err := dateParam(c, "eventStartDate")
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	endDate, err := dateParam(c, "eventEndDate")
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	cc, err := countryCode(c)
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}

	filter := repository.EventFilter{
		EventIDs:         ids,
		EventName:        c.QueryParam("eventName"),
		EventStartDate:   startDate,
		EventEndDate:     endDate,
		VenueName:        c.QueryParam("venueName"),
		VenueCountryCode: cc,
		Limit:            limit,
		Offset:           offset,
	}

	ctx := c.Request().Context()
	total, err := h.Repo.Count(ctx, filter)
	if err != nil {
		return writeError(c, err)
	}
	events, err := h.Repo.List(ctx, filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.OKPage(events, limit, offset, total))
}

// GetByID handles GET /api/v1/event/:id, returning the event with venue and
// per-tier availability.
func (h *EventHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid event id", nil)
	}
	event, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.OK(event))
}
