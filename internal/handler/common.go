// Package handler exposes the HTTP handlers for the ticket shop API. Each
// handler binds and validates its input, delegates to a repository or
// service, and maps typed errors onto HTTP status codes through a single
// shared path.
package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ticketline/ticket-shop/internal/model"
	"github.com/ticketline/ticket-shop/internal/repository"
)

const (
	defaultLimit  = 10
	maxLimit      = 100
	defaultOffset = 0
)

// writeError maps a failure onto the error envelope and status code.
// Business conflicts (insufficient inventory) become 409, unresolved ids
// become 404, and anything else is a generic 500; infrastructure faults are
// never downgraded to a business outcome.
func writeError(c echo.Context, err error) error {
	var insufficient *repository.InsufficientTicketsError
	if errors.As(err, &insufficient) {
		return c.JSON(http.StatusConflict, model.Err(
			"INSUFFICIENT_TICKETS",
			fmt.Sprintf("Not enough tickets available. Remaining: %d, Requested: %d", insufficient.Remaining, insufficient.Requested),
			map[string]any{
				"ticketId":  insufficient.TicketID,
				"requested": insufficient.Requested,
				"remaining": insufficient.Remaining,
			},
		))
	}
	var ticketMissing *repository.TicketNotFoundError
	if errors.As(err, &ticketMissing) {
		return c.JSON(http.StatusNotFound, model.Err(
			"TICKET_NOT_FOUND",
			fmt.Sprintf("Ticket with ID %d not found", ticketMissing.TicketID),
			map[string]any{"ticketId": ticketMissing.TicketID},
		))
	}
	if errors.Is(err, repository.ErrEventNotFound) {
		return c.JSON(http.StatusNotFound, model.Err("EVENT_NOT_FOUND", "Event not found", nil))
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return c.JSON(http.StatusNotFound, model.Err("USER_NOT_FOUND", "User not found", nil))
	}
	log.Printf("handler: internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, model.Err("INTERNAL_SERVER_ERROR", "An unexpected error occurred", nil))
}

func badRequest(c echo.Context, message string, details map[string]any) error {
	return c.JSON(http.StatusBadRequest, model.Err("INVALID_REQUEST", message, details))
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// pagination parses limit/offset query parameters with defaults, capping
// limit so a single request cannot drag the whole catalog.
func pagination(c echo.Context) (limit, offset uint32, err error) {
	limit = defaultLimit
	offset = defaultOffset
	if raw := c.QueryParam("limit"); raw != "" {
		n, perr := strconv.ParseUint(raw, 10, 32)
		if perr != nil || n == 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", raw)
		}
		if n > maxLimit {
			n = maxLimit
		}
		limit = uint32(n)
	}
	if raw := c.QueryParam("offset"); raw != "" {
		n, perr := strconv.ParseUint(raw, 10, 32)
		if perr != nil {
			return 0, 0, fmt.Errorf("invalid offset %q", raw)
		}
		offset = uint32(n)
	}
	return limit, offset, nil
}

// idList parses a comma-separated list of positive integer ids.
func idList(raw string) ([]uint64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// codeList parses a comma-separated list of tier codes, upper-cased.
func codeList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		if code := strings.ToUpper(strings.TrimSpace(p)); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// dateParam parses an optional ISO 8601 query parameter.
func dateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: expected ISO 8601 (YYYY-MM-DDTHH:mm:ssZ)", name)
	}
	return &t, nil
}

// countryCode normalises an optional country code filter; two or four
// characters are accepted, matching the data set.
func countryCode(c echo.Context) (string, error) {
	raw := strings.ToUpper(strings.TrimSpace(c.QueryParam("venueCountryCode")))
	if raw == "" {
		return "", nil
	}
	if len(raw) != 2 && len(raw) != 4 {
		return "", errors.New("invalid venueCountryCode: expected 2 or 4 characters")
	}
	return raw, nil
}
