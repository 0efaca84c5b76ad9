package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ticketline/ticket-shop/internal/model"
	"github.com/ticketline/ticket-shop/internal/repository"
)

// UserHandler serves the read-only user endpoints.
type UserHandler struct {
	Repo *repository.UserRepo
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(repo *repository.UserRepo) *UserHandler {
	if repo == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Repo: repo}
}

// List handles GET /api/v1/user.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Repo.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.OK(users))
}

// GetByID handles GET /api/v1/user/:id.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id", nil)
	}
	user, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, model.OK(user))
}
