package ports

import (
	"context"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

// RestaurantRepository defines persistence operations for restaurants.
// Implementations report a missing record as domain.ErrRestaurantNotFound
// and a duplicate id on Create as domain.ErrRestaurantExists.
type RestaurantRepository interface {
	List(ctx context.Context) ([]*domain.Restaurant, error)
	FindByID(ctx context.Context, id int64) (*domain.Restaurant, error)
	Create(ctx context.Context, r *domain.Restaurant) error
	// Update replaces every field of the record identified by r.ID.
	Update(ctx context.Context, r *domain.Restaurant) error
	Delete(ctx context.Context, id int64) error
}
