package http

import (
	"errors"
	"net/http"

	"tradex/internal/api/dto"
	"tradex/internal/api/repository"
	"tradex/internal/api/service"

	"github.com/labstack/echo/v4"
)

// writeError maps service and repository errors onto HTTP responses.
// Validation and not-found errors carry enough detail to correct input;
// anything else becomes a generic internal error.
func writeError(c echo.Context, err error) error {
	var validationErrs dto.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": validationErrs})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, service.ErrPositionNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Position does not exist"})
	case errors.Is(err, service.ErrPriceUnavailable):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Price unavailable for stock"})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: "Conflicting concurrent request"})
	default:
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Something went wrong"})
	}
}
