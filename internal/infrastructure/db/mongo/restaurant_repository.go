package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
)

const collectionRestaurants = "restaurants"

type RestaurantRepository struct {
	col *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{col: db.Collection(collectionRestaurants)}
}

// mongoRestaurant is the stored document; the client-chosen id is the _id.
type mongoRestaurant struct {
	ID          int64   `bson:"_id"`
	Name        string  `bson:"name"`
	Address     string  `bson:"address"`
	City        string  `bson:"city"`
	Phone       string  `bson:"phone"`
	Description string  `bson:"description"`
	Rating      float64 `bson:"rating"`
}

func toRestaurantDocument(r *domain.Restaurant) mongoRestaurant {
	return mongoRestaurant{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		City:        r.City,
		Phone:       r.Phone,
		Description: r.Description,
		Rating:      r.Rating,
	}
}

func (d mongoRestaurant) toDomain() *domain.Restaurant {
	return &domain.Restaurant{
		ID:          d.ID,
		Name:        d.Name,
		Address:     d.Address,
		City:        d.City,
		Phone:       d.Phone,
		Description: d.Description,
		Rating:      d.Rating,
	}
}

// List returns every restaurant ordered by id.
func (r *RestaurantRepository) List(ctx context.Context) ([]*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoRestaurant
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}

	out := make([]*domain.Restaurant, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id int64) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoRestaurant
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts rest. The id is the document _id, so a taken id is reported
// as domain.ErrRestaurantExists.
func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toRestaurantDocument(rest)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrRestaurantExists
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// Update replaces the whole document.
func (r *RestaurantRepository) Update(ctx context.Context, rest *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rest.ID}, toRestaurantDocument(rest))
	if err != nil {
		return fmt.Errorf("replace restaurant: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}

func (r *RestaurantRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete restaurant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRestaurantNotFound
	}
	return nil
}
