package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studentsites/internal/domain"
	apperrors "studentsites/internal/errors"
	mongoinfra "studentsites/internal/infrastructure/mongo"
)

type orderDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Phone       string             `bson:"phone"`
	WebsiteType string             `bson:"websiteType"`
	Package     string             `bson:"package"`
	Referral    string             `bson:"referral,omitempty"`
	Preferences string             `bson:"preferences,omitempty"`
	Status      string             `bson:"status"`
	OrderDate   time.Time          `bson:"orderDate"`
	Version     int64              `bson:"version"`
}

func (d orderDocument) toDomain() domain.Order {
	return domain.Order{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		WebsiteType: d.WebsiteType,
		Package:     domain.PackageType(d.Package),
		Referral:    d.Referral,
		Preferences: d.Preferences,
		Status:      domain.Status(d.Status),
		OrderDate:   d.OrderDate.UTC(),
		Version:     d.Version,
	}
}

var newestFirst = bson.D{{Key: "orderDate", Value: -1}, {Key: "_id", Value: -1}}

type MongoOrderRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoOrderRepository(db *mongo.Database, timeout time.Duration) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: db.Collection(mongoinfra.OrdersCollection),
		timeout:    timeout,
	}
}

func (r *MongoOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := orderDocument{
		ID:          primitive.NewObjectID(),
		Name:        order.Name,
		Email:       order.Email,
		Phone:       order.Phone,
		WebsiteType: order.WebsiteType,
		Package:     string(order.Package),
		Referral:    order.Referral,
		Preferences: order.Preferences,
		Status:      string(order.Status),
		OrderDate:   order.OrderDate,
		Version:     order.Version,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return apperrors.NewPersistenceError("inserting order", err)
	}

	order.ID = doc.ID.Hex()
	return nil
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, orderNotFound()
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc orderDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, orderNotFound()
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying order by id", err)
	}

	order := doc.toDomain()
	return &order, nil
}

func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoOrderRepository) FindByStatuses(ctx context.Context, statuses []domain.Status) ([]domain.Order, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}
	return r.list(ctx, bson.M{"status": bson.M{"$in": values}})
}

func (r *MongoOrderRepository) list(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, apperrors.NewPersistenceError("querying orders", err)
	}

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.NewPersistenceError("reading orders", err)
	}

	orders := make([]domain.Order, len(docs))
	for i, d := range docs {
		orders[i] = d.toDomain()
	}
	return orders, nil
}

func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, expectedVersion *int64) (*domain.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, orderNotFound()
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"_id": oid}
	if expectedVersion != nil {
		filter["version"] = *expectedVersion
	}
	update := bson.M{
		"$set": bson.M{"status": string(status)},
		"$inc": bson.M{"version": 1},
	}

	var doc orderDocument
	err = r.collection.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	if errors.Is(err, mongo.ErrNoDocuments) {
		if expectedVersion == nil {
			return nil, orderNotFound()
		}
		n, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": oid})
		if countErr != nil {
			return nil, apperrors.NewPersistenceError("checking order existence", countErr)
		}
		if n == 0 {
			return nil, orderNotFound()
		}
		return nil, versionConflict(id)
	}
	if err != nil {
		return nil, apperrors.NewPersistenceError(fmt.Sprintf("updating order %s status", id), err)
	}

	order := doc.toDomain()
	return &order, nil
}
