package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

// restaurantID reads the :id path parameter. A segment that is not an integer
// cannot name any stored restaurant, so it is reported as not found rather
// than as a bad request.
func restaurantID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrRestaurantNotFound
	}
	return id, nil
}
