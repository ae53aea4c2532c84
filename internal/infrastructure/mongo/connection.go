package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"studentsites/internal/config"
)

const (
	OrdersCollection = "orders"
	OffersCollection = "offers"
)

func NewConnection(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the indexes the listing queries sort and filter on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	orderIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderDate", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "orderDate", Value: -1}}},
	}
	if _, err := db.Collection(OrdersCollection).Indexes().CreateMany(ctx, orderIndexes); err != nil {
		return fmt.Errorf("creating order indexes: %w", err)
	}

	offerIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdDate", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdDate", Value: 1}}},
	}
	if _, err := db.Collection(OffersCollection).Indexes().CreateMany(ctx, offerIndexes); err != nil {
		return fmt.Errorf("creating offer indexes: %w", err)
	}

	return nil
}
