package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/restaurantes/restaurant-api/internal/core/ports"
	"github.com/restaurantes/restaurant-api/internal/infrastructure/db/memory"
	mongostore "github.com/restaurantes/restaurant-api/internal/infrastructure/db/mongo"
	pgstore "github.com/restaurantes/restaurant-api/internal/infrastructure/db/postgres"
	redisstore "github.com/restaurantes/restaurant-api/internal/infrastructure/db/redis"
	healthhttp "github.com/restaurantes/restaurant-api/internal/infrastructure/http/handlers"
	"github.com/restaurantes/restaurant-api/internal/pkg/config"
)

// stores holds the repositories selected by STORE_DRIVER plus whatever must
// be released on shutdown.
type stores struct {
	users       ports.UserRepository
	restaurants ports.RestaurantRepository
	pingers     map[string]healthhttp.Pinger
	closers     []func(context.Context) error
}

func (s *stores) close(log zerolog.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](context.Background()); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{pingers: map[string]healthhttp.Pinger{}}

	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, client.Disconnect)

		repos, err := mongostore.NewRepositories(ctx, db)
		if err != nil {
			st.close(log)
			return nil, err
		}
		st.users, st.restaurants = repos.Users, repos.Restaurants
		st.pingers["mongodb"] = healthhttp.MongoPinger(db)
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	case config.DriverPostgres:
		db, err := pgstore.Connect(ctx, pgstore.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, func(context.Context) error { return db.Close() })

		if err := pgstore.Migrate(db); err != nil {
			st.close(log)
			return nil, err
		}
		st.users = pgstore.NewUserRepository(db)
		st.restaurants = pgstore.NewRestaurantRepository(db)
		st.pingers["postgres"] = healthhttp.SQLPinger(db)
		log.Info().Msg("postgres connected and migrated")

	case config.DriverMemory:
		st.users = memory.NewUserRepository()
		st.restaurants = memory.NewRestaurantRepository()
		log.Warn().Msg("using in-memory store; data is lost on restart")

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.Redis.CacheEnabled() {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			st.close(log)
			return nil, err
		}
		st.closers = append(st.closers, func(context.Context) error { return rdb.Close() })

		st.restaurants = redisstore.NewCachedRestaurantRepository(st.restaurants, redisstore.NewClient(rdb), cfg.Redis.CacheTTL, log)
		st.pingers["redis"] = healthhttp.RedisPinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.CacheTTL).Msg("restaurant cache enabled")
	}

	return st, nil
}
