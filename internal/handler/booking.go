package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketline/ticket-shop/internal/model"
)

// Booker runs one purchase attempt, implemented by service.BookingService.
type Booker interface {
	Book(ctx context.Context, req model.BookingRequest) (*model.Booking, error)
}

// BookingHandler serves the purchase endpoint. The request body carries the
// buyer's user id; this API performs no authentication of its own.
type BookingHandler struct {
	Svc Booker
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc Booker) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Svc: svc}
}

// Create handles POST /api/v1/user/ticket. The body must be a JSON object
// with positive ticketId, userId and quantity. On success it returns 201
// with the booking as read back inside the committed transaction; running
// out of inventory is a 409, an unknown ticket a 404.
func (h *BookingHandler) Create(c echo.Context) error {
	var req model.BookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body", nil)
	}
	if req.TicketID == 0 || req.UserID == 0 || req.Quantity == 0 {
		return badRequest(c, "ticketId, userId and quantity must be positive integers", map[string]any{
			"ticketId": req.TicketID,
			"userId":   req.UserID,
			"quantity": req.Quantity,
		})
	}

	booking, err := h.Svc.Book(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, model.OK(booking))
}
