package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketline/ticket-shop/internal/model"
	"github.com/ticketline/ticket-shop/internal/repository"
)

// TicketHandler serves the read-only ticket catalog.
type TicketHandler struct {
	Repo *repository.TicketRepo
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(repo *repository.TicketRepo) *TicketHandler {
	if repo == nil {
		panic("nil repository passed to NewTicketHandler")
	}
	return &TicketHandler{Repo: repo}
}

// List handles GET /api/v1/ticket. Supported filters: ticketIds and
// tierCodes (comma-separated), eventName, eventStartDate, eventEndDate,
// venueName, venueCountryCode, plus limit/offset pagination.
func (h *TicketHandler) List(c echo.Context) error {
	limit, offset, err := pagination(c)
	if err != nil {
		return badRequest(c, err.Error(), nil)
	}
	ids, err := idList(c.QueryParam("ticketIds"))
	if err != nil {
		return badRequest(c, "invalid ticketIds: "+err.Error(), nil)
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

	filter := repository.TicketFilter{
		TicketIDs:        ids,
		TierCodes:        codeList(c.QueryParam("tierCodes")),
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
	tickets, err := h.Repo.List(ctx, filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.OKPage(tickets, limit, offset, total))
}

// GetByID handles GET /api/v1/ticket/:id.
func (h *TicketHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid ticket id", nil)
	}
	ticket, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.OK(ticket))
}
