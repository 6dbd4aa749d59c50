package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

type Repository interface {
	Insert(ctx context.Context, item Booking) error
	List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Booking, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	GetByID(ctx context.Context, id string) (Booking, error)
	// UpdateStatus moves a booking from one status to another. It fails with
	// ErrNotFound when no booking with that id has status from.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (Booking, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Insert(ctx context.Context, item Booking) error {
	if _, err := r.col.InsertOne(ctx, item); err != nil {
		return storeError(err)
	}
	return nil
}

func listQuery(filter ListFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

func (r *MongoRepository) List(ctx context.Context, filter ListFilter, limit, offset int64) ([]Booking, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	if offset > 0 {
		opts.SetSkip(offset)
	}

	cursor, err := r.col.Find(ctx, listQuery(filter), opts)
	if err != nil {
		return nil, storeError(err)
	}
	defer cursor.Close(ctx)

	items := make([]Booking, 0)
	for cursor.Next(ctx) {
		var b Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

func (r *MongoRepository) Count(ctx context.Context, filter ListFilter) (int64, error) {
	n, err := r.col.CountDocuments(ctx, listQuery(filter))
	if err != nil {
		return 0, storeError(err)
	}
	return n, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Booking, error) {
	var b Booking
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, storeError(err)
	}
	return b, nil
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) (Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}

	var updated Booking
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id, "status": from}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Booking{}, ErrNotFound
		}
		return Booking{}, storeError(err)
	}
	return updated, nil
}

// storeError tags driver failures caused by an unreachable deployment.
func storeError(err error) error {
	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return err
}
