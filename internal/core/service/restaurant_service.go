package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
	"github.com/restaurantes/restaurant-api/internal/core/ports"
)

type RestaurantService struct {
	repo   ports.RestaurantRepository
	logger zerolog.Logger
}

func NewRestaurantService(repo ports.RestaurantRepository, logger zerolog.Logger) *RestaurantService {
	return &RestaurantService{repo: repo, logger: logger}
}

func (s *RestaurantService) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	if items == nil {
		items = []*domain.Restaurant{}
	}
	return items, nil
}

func (s *RestaurantService) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepoErr("get restaurant", err)
	}
	return r, nil
}

// CreateRestaurant rejects an id that is already taken instead of overwriting.
func (s *RestaurantService) CreateRestaurant(ctx context.Context, r domain.Restaurant) (*domain.Restaurant, error) {
	if err := validateRestaurant(r, true); err != nil {
		return nil, err
	}

	_, err := s.repo.FindByID(ctx, r.ID)
	switch {
	case err == nil:
		return nil, domain.ErrRestaurantExists
	case !errors.Is(err, domain.ErrRestaurantNotFound):
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	if err := s.repo.Create(ctx, &r); err != nil {
		s.logger.Error().Err(err).Int64("restaurant_id", r.ID).Msg("failed to create restaurant")
		return nil, wrapRepoErr("create restaurant", err)
	}

	s.logger.Info().Int64("restaurant_id", r.ID).Str("name", r.Name).Msg("restaurant created")
	return &r, nil
}

// UpdateRestaurant overwrites every mutable field. The id argument wins over
// any id carried in r. An unknown id is reported before the payload is
// validated.
func (s *RestaurantService) UpdateRestaurant(ctx context.Context, id int64, r domain.Restaurant) (*domain.Restaurant, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, wrapRepoErr("update restaurant", err)
	}

	r.ID = id
	if err := validateRestaurant(r, false); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &r); err != nil {
		return nil, wrapRepoErr("update restaurant", err)
	}

	s.logger.Info().Int64("restaurant_id", id).Msg("restaurant updated")
	return &r, nil
}

func (s *RestaurantService) DeleteRestaurant(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapRepoErr("delete restaurant", err)
	}

	s.logger.Info().Int64("restaurant_id", id).Msg("restaurant deleted")
	return nil
}

// validateRestaurant is a presence check only. Rating has no missing state at
// this layer; the transport rejects a null rating before it gets here.
func validateRestaurant(r domain.Restaurant, requireID bool) error {
	var missing []string
	if requireID && r.ID == 0 {
		missing = append(missing, "id")
	}
	for _, f := range []struct{ name, value string }{
		{"name", r.Name},
		{"address", r.Address},
		{"city", r.City},
		{"phone", r.Phone},
		{"description", r.Description},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// wrapRepoErr keeps domain errors bare so callers and the error handler see
// them unchanged; anything else gets the operation as context.
func wrapRepoErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
