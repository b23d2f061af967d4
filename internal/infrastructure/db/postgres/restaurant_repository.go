package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

const restaurantsTable = "restaurants"

var restaurantColumns = []string{"id", "name", "address", "city", "phone", "description", "rating"}

type RestaurantRepository struct {
	db *sql.DB
}

func NewRestaurantRepository(db *sql.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(s scanner) (*domain.Restaurant, error) {
	var r domain.Restaurant
	if err := s.Scan(&r.ID, &r.Name, &r.Address, &r.City, &r.Phone, &r.Description, &r.Rating); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns every restaurant ordered by id.
func (r *RestaurantRepository) List(ctx context.Context) ([]*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args, err := psql.Select(restaurantColumns...).
		From(restaurantsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list restaurants: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	out := []*domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return out, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args, err := psql.Select(restaurantColumns...).
		From(restaurantsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select restaurant: %w", err)
	}

	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return rest, nil
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args, err := psql.Insert(restaurantsTable).
		Columns(restaurantColumns...).
		Values(rest.ID, rest.Name, rest.Address, rest.City, rest.Phone, rest.Description, rest.Rating).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert restaurant: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if pgCode(err) == pgerrcode.UniqueViolation {
			return domain.ErrRestaurantExists
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of the row with rest.ID.
func (r *RestaurantRepository) Update(ctx context.Context, rest *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args, err := psql.Update(restaurantsTable).
		Set("name", rest.Name).
		Set("address", rest.Address).
		Set("city", rest.City).
		Set("phone", rest.Phone).
		Set("description", rest.Description).
		Set("rating", rest.Rating).
		Where(sq.Eq{"id": rest.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update restaurant: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	return requireOneRow(res)
}

func (r *RestaurantRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args, err := psql.Delete(restaurantsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete restaurant: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}
