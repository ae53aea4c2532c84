package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studentsites/internal/domain"
	apperrors "studentsites/internal/errors"
	mongoinfra "studentsites/internal/infrastructure/mongo"
)

type offerDocument struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Title              string             `bson:"title"`
	DiscountPercentage int                `bson:"discountPercentage"`
	ApplicablePackage  string             `bson:"applicablePackage"`
	IsActive           bool               `bson:"isActive"`
	CreatedDate        time.Time          `bson:"createdDate"`
}

func (d offerDocument) toDomain() domain.Offer {
	return domain.Offer{
		ID:                 d.ID.Hex(),
		Title:              d.Title,
		DiscountPercentage: d.DiscountPercentage,
		ApplicablePackage:  domain.PackageType(d.ApplicablePackage),
		IsActive:           d.IsActive,
		CreatedDate:        d.CreatedDate.UTC(),
	}
}

type MongoOfferRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoOfferRepository(db *mongo.Database, timeout time.Duration) *MongoOfferRepository {
	return &MongoOfferRepository{
		collection: db.Collection(mongoinfra.OffersCollection),
		timeout:    timeout,
	}
}

func (r *MongoOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := offerDocument{
		ID:                 primitive.NewObjectID(),
		Title:              offer.Title,
		DiscountPercentage: offer.DiscountPercentage,
		ApplicablePackage:  string(offer.ApplicablePackage),
		IsActive:           offer.IsActive,
		CreatedDate:        offer.CreatedDate,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return apperrors.NewPersistenceError("inserting offer", err)
	}

	offer.ID = doc.ID.Hex()
	return nil
}

func (r *MongoOfferRepository) FindAll(ctx context.Context) ([]domain.Offer, error) {
	sort := bson.D{{Key: "createdDate", Value: -1}, {Key: "_id", Value: -1}}
	return r.list(ctx, bson.M{}, sort)
}

func (r *MongoOfferRepository) FindActive(ctx context.Context) ([]domain.Offer, error) {
	sort := bson.D{{Key: "createdDate", Value: 1}, {Key: "_id", Value: 1}}
	return r.list(ctx, bson.M{"isActive": true}, sort)
}

func (r *MongoOfferRepository) list(ctx context.Context, filter bson.M, sort bson.D) ([]domain.Offer, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying offers", err)
	}

	var docs []offerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewPersistenceError("reading offers", err)
	}

	offers := make([]domain.Offer, len(docs))
	for i, d := range docs {
		offers[i] = d.toDomain()
	}
	return offers, nil
}

func (r *MongoOfferRepository) SetActive(ctx context.Context, id string, active bool) (*domain.Offer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, offerNotFound()
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc offerDocument
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isActive": active}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, offerNotFound()
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("updating offer", err)
	}

	offer := doc.toDomain()
	return &offer, nil
}

func (r *MongoOfferRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return offerNotFound()
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.NewPersistenceError("deleting offer", err)
	}
	if result.DeletedCount == 0 {
		return offerNotFound()
	}
	return nil
}
