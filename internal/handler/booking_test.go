package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ticketline/ticket-shop/internal/model"
	"github.com/ticketline/ticket-shop/internal/repository"
)

// stubBooker returns a canned result or error.
type stubBooker struct {
	booking *model.Booking
	err     error
	got     model.BookingRequest
}

func (s *stubBooker) Book(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func postBooking(t *testing.T, svc Booker, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/ticket", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewBookingHandler(svc)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	return rec
}

func TestCreateBookingSuccess(t *testing.T) {
	svc := &stubBooker{booking: &model.Booking{
		ID:            42,
		TicketID:      3,
		UserID:        7,
		UnitPrice:     20.00,
		TicketAmount:  2,
		TotalPrice:    40.00,
		DatePurchased: "2026-07-01T12:00:00Z",
	}}

	rec := postBooking(t, svc, `{"ticketId":3,"userId":7,"quantity":2}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.got.TicketID != 3 || svc.got.UserID != 7 || svc.got.Quantity != 2 {
		t.Fatalf("service received %+v", svc.got)
	}

	var resp struct {
		Status string        `json:"status"`
		Data   model.Booking `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("status field = %q, want OK", resp.Status)
	}
	if resp.Data.ID != 42 || resp.Data.TotalPrice != 40.00 {
		t.Fatalf("booking payload = %+v", resp.Data)
	}
}

func TestCreateBookingInvalidBody(t *testing.T) {
	for name, body := range map[string]string{
		"malformed json": `{"ticketId":`,
		"zero quantity":  `{"ticketId":3,"userId":7,"quantity":0}`,
		"missing user":   `{"ticketId":3,"quantity":2}`,
		"empty object":   `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postBooking(t, &stubBooker{}, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			assertErrorCode(t, rec, "INVALID_REQUEST")
		})
	}
}

func TestCreateBookingNegativeQuantity(t *testing.T) {
	// Binding -1 into an unsigned field fails, so this surfaces as a bind
	// error rather than reaching the range check.
	rec := postBooking(t, &stubBooker{}, `{"ticketId":3,"userId":7,"quantity":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateBookingInsufficientTickets(t *testing.T) {
	svc := &stubBooker{err: &repository.InsufficientTicketsError{TicketID: 3, Requested: 5, Remaining: 2}}

	rec := postBooking(t, svc, `{"ticketId":3,"userId":7,"quantity":5}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	assertErrorCode(t, rec, "INSUFFICIENT_TICKETS")

	var resp struct {
		Error struct {
			Message string `json:"message"`
			Details struct {
				Remaining uint32 `json:"remaining"`
				Requested uint32 `json:"requested"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error.Details.Remaining != 2 || resp.Error.Details.Requested != 5 {
		t.Fatalf("details = %+v", resp.Error.Details)
	}
	if !strings.Contains(resp.Error.Message, "Remaining: 2") {
		t.Fatalf("message %q does not carry the remaining count", resp.Error.Message)
	}
}

func TestCreateBookingTicketNotFound(t *testing.T) {
	svc := &stubBooker{err: &repository.TicketNotFoundError{TicketID: 99}}

	rec := postBooking(t, svc, `{"ticketId":99,"userId":7,"quantity":1}`)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	assertErrorCode(t, rec, "TICKET_NOT_FOUND")
}

func TestCreateBookingInternalError(t *testing.T) {
	svc := &stubBooker{err: errors.New("driver: bad connection")}

	rec := postBooking(t, svc, `{"ticketId":3,"userId":7,"quantity":1}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	assertErrorCode(t, rec, "INTERNAL_SERVER_ERROR")
	if strings.Contains(rec.Body.String(), "bad connection") {
		t.Fatal("internal error detail leaked into the response body")
	}
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()

	var resp struct {
		Status string `json:"status"`
		Error  struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "ERROR" {
		t.Fatalf("status field = %q, want ERROR", resp.Status)
	}
	if resp.Error.Code != want {
		t.Fatalf("error code = %q, want %q", resp.Error.Code, want)
	}
}
