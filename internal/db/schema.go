package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const codeNamespaceExists = 48

// BookingValidator is the server-side schema for the bookings collection.
// Application validation runs first; this catches writes from other clients.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"customerName",
			"email",
			"service",
			"date",
			"time",
			"status",
			"createdAt",
			"updatedAt",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"customerName": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 3,
			},

			"service": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{2}:\d{2}$`,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"pending",
					"confirmed",
					"cancelled",
				},
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},

			"updatedAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}

// EnsureBookingSchema creates the bookings collection with its validator, or
// updates the validator when the collection already exists.
func EnsureBookingSchema(ctx context.Context, db *mongo.Database) error {
	err := db.CreateCollection(ctx, BookingsCollection, options.CreateCollection().SetValidator(BookingValidator))
	if err == nil {
		return nil
	}

	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != codeNamespaceExists {
		return err
	}

	return db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: BookingsCollection},
		{Key: "validator", Value: BookingValidator},
		{Key: "validationLevel", Value: "strict"},
	}).Err()
}
