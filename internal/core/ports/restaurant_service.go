package ports

import (
	"context"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

// RestaurantService defines the restaurant use cases.
type RestaurantService interface {
	ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error)
	CreateRestaurant(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error)
	// UpdateRestaurant performs a full replace of the record with the given id.
	UpdateRestaurant(ctx context.Context, id int64, r domain.Restaurant) (*domain.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id int64) error
}
