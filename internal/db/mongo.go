package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/description"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BookingsCollection = "bookings"

// ErrUnreachable marks a client that was built but could not reach the server.
var ErrUnreachable = errors.New("mongo unreachable")

type Collections struct {
	Bookings *mongo.Collection
}

// Store is the process-wide MongoDB handle. It is created once at startup and
// handed to every component that needs the database.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
	Cols   *Collections

	mu      sync.RWMutex
	servers map[string]bool
}

// Connect builds the client and pings the server. When the ping fails the
// returned Store is still usable: the driver keeps monitoring the deployment
// and Connected flips once a heartbeat succeeds.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	s := &Store{}

	monitor := &event.ServerMonitor{
		TopologyDescriptionChanged: func(e *event.TopologyDescriptionChangedEvent) {
			s.track(e.NewDescription.Servers)
		},
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerMonitor(monitor).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	db := client.Database(dbName)
	s.Client = client
	s.DB = db
	s.Cols = &Collections{
		Bookings: db.Collection(BookingsCollection),
	}

	if err := client.Ping(ctx, nil); err != nil {
		return s, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	return s, nil
}

// Connected reports whether any server in the current topology answered its
// last heartbeat.
// It never blocks.
func (s *Store) Connected() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, up := range s.servers {
		if up {
			return true
		}
	}
	return false
}

// track replaces the per-address state with the latest topology view. A
// server is up once the driver has classified it from a heartbeat.
func (s *Store) track(servers []description.Server) {
	next := make(map[string]bool, len(servers))
	for _, srv := range servers {
		next[srv.Addr.String()] = srv.Kind != description.Unknown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.servers = next
}

func (s *Store) Disconnect(ctx context.Context) error {
	if s == nil || s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}

func EnsureIndexes(ctx context.Context, cols *Collections) error {
	indexTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := cols.Bookings.Indexes().CreateMany(indexTimeout, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	})
	if err != nil {
		return err
	}

	return nil
}
