// Package memory holds process-local repositories used for local runs and
// tests. Data does not survive a restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

type UserRepository struct {
	mu         sync.RWMutex
	byUsername map[string]*domain.User
	ids        map[int64]struct{}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byUsername: make(map[string]*domain.User),
		ids:        make(map[int64]struct{}),
	}
}

// Create rejects a taken username or id with domain.ErrUserExists.
func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[user.Username]; ok {
		return domain.ErrUserExists
	}
	if _, ok := r.ids[user.ID]; ok {
		return domain.ErrUserExists
	}

	r.byUsername[user.Username] = cloneUser(user)
	r.ids[user.ID] = struct{}{}
	return nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	return &c
}

type RestaurantRepository struct {
	mu   sync.RWMutex
	byID map[int64]domain.Restaurant
}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{byID: make(map[int64]domain.Restaurant)}
}

// List returns every restaurant ordered by id.
func (r *RestaurantRepository) List(_ context.Context) ([]*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Restaurant, 0, len(r.byID))
	for _, v := range r.byID {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RestaurantRepository) FindByID(_ context.Context, id int64) (*domain.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	return &v, nil
}

func (r *RestaurantRepository) Create(_ context.Context, rest *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rest.ID]; ok {
		return domain.ErrRestaurantExists
	}
	r.byID[rest.ID] = *rest
	return nil
}

func (r *RestaurantRepository) Update(_ context.Context, rest *domain.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[rest.ID]; !ok {
		return domain.ErrRestaurantNotFound
	}
	r.byID[rest.ID] = *rest
	return nil
}

func (r *RestaurantRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrRestaurantNotFound
	}
	delete(r.byID, id)
	return nil
}
