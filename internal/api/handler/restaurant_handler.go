package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/restaurantes/restaurant-api/internal/core/ports"
	"github.com/restaurantes/restaurant-api/internal/pkg/metrics"
)

// RestaurantHandler handles HTTP requests for restaurant operations.
// Access control is applied by the router; handlers assume an authorized caller.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// List handles GET /restaurants.
//
// @Summary      List restaurants
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   restaurantResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	items, err := h.service.ListRestaurants(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantList(items))
}

// Get handles GET /restaurants/:id.
//
// @Summary      Get a restaurant by id
// @Tags         restaurants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Restaurant id"
// @Success      200  {object}  restaurantResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /restaurants/{id} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, err := restaurantID(c)
	if err != nil {
		return err
	}

	r, err := h.service.GetRestaurant(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// Create handles POST /restaurants.
//
// @Summary      Create a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRestaurantRequest  true  "Restaurant"
// @Success      201   {object}  restaurantResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r, err := h.service.CreateRestaurant(c.Request().Context(), req.toDomain(req.ID))
	if err != nil {
		return err
	}

	metrics.RestaurantMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toRestaurantResponse(r))
}

// Update handles PUT /restaurants/:id. Every mutable field is replaced.
//
// @Summary      Replace a restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                      true  "Restaurant id"
// @Param        body  body      updateRestaurantRequest  true  "Restaurant"
// @Success      200   {object}  restaurantResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /restaurants/{id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	id, err := restaurantID(c)
	if err != nil {
		return err
	}

	// unknown ids are a 404 whatever the body holds
	if _, err := h.service.GetRestaurant(c.Request().Context(), id); err != nil {
		return err
	}

	var req updateRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r, err := h.service.UpdateRestaurant(c.Request().Context(), id, req.toDomain(id))
	if err != nil {
		return err
	}

	metrics.RestaurantMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// Delete handles DELETE /restaurants/:id.
//
// @Summary      Delete a restaurant
// @Tags         restaurants
// @Security     BearerAuth
// @Param        id   path  int  true  "Restaurant id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /restaurants/{id} [delete]
func (h *RestaurantHandler) Delete(c echo.Context) error {
	id, err := restaurantID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteRestaurant(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.RestaurantMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
