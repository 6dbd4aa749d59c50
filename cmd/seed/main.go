package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"bookinub-backend/internal/bookings"
	"bookinub-backend/internal/config"
	"bookinub-backend/internal/db"
	"bookinub-backend/internal/validation"

	"go.mongodb.org/mongo-driver/bson"
)

type seedCustomer struct {
	Name  string
	Email string
}

var customers = []seedCustomer{
	{Name: "Jane Doe", Email: "jane@example.com"},
	{Name: "Amara Okafor", Email: "Amara.Okafor@Example.com"},
	{Name: "Lucas Martin", Email: "lucas.martin@example.org"},
	{Name: "Mei Chen", Email: "mei.chen@example.net"},
	{Name: "Diego Alvarez", Email: " diego@example.com "},
}

var slots = []string{"09:00", "10:30", "13:00", "14:30", "16:00"}

func main() {
	count := flag.Int("n", 10, "number of bookings to create")
	drop := flag.Bool("drop", false, "delete existing bookings first")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Disconnect(context.Background())

	if *drop {
		res, err := store.Cols.Bookings.DeleteMany(ctx, bson.M{})
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("removed %d bookings", res.DeletedCount)
	}

	if err := db.EnsureBookingSchema(ctx, store.DB); err != nil {
		log.Fatal(err)
	}
	if err := db.EnsureIndexes(ctx, store.Cols); err != nil {
		log.Fatal(err)
	}

	service := bookings.NewService(bookings.NewMongoRepository(store.Cols.Bookings), validation.New(), cfg.Timezone)

	start := time.Now().In(cfg.Timezone).AddDate(0, 0, 1)
	for i := 0; i < *count; i++ {
		c := customers[i%len(customers)]
		req := bookings.CreateRequest{
			CustomerName: c.Name,
			Email:        c.Email,
			Service:      bookings.KnownServices[i%len(bookings.KnownServices)],
			Date:         start.AddDate(0, 0, i/len(slots)).Format(validation.DateLayout),
			Time:         slots[i%len(slots)],
		}
		item, err := service.Create(ctx, req)
		if err != nil {
			log.Fatal(fmt.Errorf("seed booking %d: %w", i, err))
		}
		log.Printf("created booking %s for %s on %s %s", item.ID, item.Email, item.Date, item.Time)
	}
}
