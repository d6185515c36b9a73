package handlers

import (
	"errors"
	"net/http"

	"reward-center/internal/domain"
	"reward-center/internal/rewards"

	"github.com/labstack/echo/v4"
)

// respondError maps domain failures onto HTTP statuses. Engine rejections are
// surfaced as bad gateway so callers can tell local refusals apart from
// delegated ones.
func respondError(c echo.Context, err error) error {
	var delegated *domain.DelegatedCallError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrDuplicateEntity):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrAuthorityMismatch):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrDerivedKeyInvalid),
		errors.Is(err, domain.ErrStringTooLong),
		errors.Is(err, domain.ErrSupplyExceedsAvailable),
		errors.Is(err, domain.ErrSupplyNotProvided),
		errors.Is(err, rewards.ErrNumericOverflow):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &delegated):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": delegated.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
