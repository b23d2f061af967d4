package handler

import "github.com/restaurantes/restaurant-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// --- Restaurants ---

// restaurantFields are the mutable attributes shared by create and update.
// Rating is a pointer so that a missing rating fails validation while 0 passes.
type restaurantFields struct {
	Name        string   `json:"name"        validate:"required"`
	Address     string   `json:"address"     validate:"required"`
	City        string   `json:"city"        validate:"required"`
	Phone       string   `json:"phone"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Rating      *float64 `json:"rating"      validate:"required"`
}

type createRestaurantRequest struct {
	ID int64 `json:"id" validate:"required"`
	restaurantFields
}

// updateRestaurantRequest accepts an id for symmetry with create; the path id
// is the one applied.
type updateRestaurantRequest struct {
	ID int64 `json:"id"`
	restaurantFields
}

type restaurantResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Phone       string  `json:"phone"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

func (f restaurantFields) toDomain(id int64) domain.Restaurant {
	r := domain.Restaurant{
		ID:          id,
		Name:        f.Name,
		Address:     f.Address,
		City:        f.City,
		Phone:       f.Phone,
		Description: f.Description,
	}
	if f.Rating != nil {
		r.Rating = *f.Rating
	}
	return r
}

func toRestaurantResponse(r *domain.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		City:        r.City,
		Phone:       r.Phone,
		Description: r.Description,
		Rating:      r.Rating,
	}
}

func toRestaurantList(items []*domain.Restaurant) []restaurantResponse {
	out := make([]restaurantResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toRestaurantResponse(r))
	}
	return out
}
