// Command seed-inventory loads the embedded fixture snapshot into the
// parking_spaces table. Useful to bootstrap a fresh development database
// with realistic inventory.
package main

import (
	"context"
	"time"

	"github.com/parkpal/parkpal-backend/config"
	"github.com/parkpal/parkpal-backend/db"
	"github.com/parkpal/parkpal-backend/internal/store/fixture"
	"github.com/parkpal/parkpal-backend/logger"
)

const upsertSpaceQuery = `
	INSERT INTO parking_spaces (
		id, title, location, address, postcode,
		latitude, longitude, what3words, features,
		price_per_day, price_per_month,
		total_spaces, booked_spaces, image_url,
		created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
	ON CONFLICT (id) DO UPDATE SET
		title = EXCLUDED.title,
		location = EXCLUDED.location,
		address = EXCLUDED.address,
		postcode = EXCLUDED.postcode,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		what3words = EXCLUDED.what3words,
		features = EXCLUDED.features,
		price_per_day = EXCLUDED.price_per_day,
		price_per_month = EXCLUDED.price_per_month,
		total_spaces = EXCLUDED.total_spaces,
		booked_spaces = EXCLUDED.booked_spaces,
		image_url = EXCLUDED.image_url,
		updated_at = NOW()`

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := db.Connect(ctx, cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	inv, err := fixture.NewInventory()
	if err != nil {
		log.Fatalf("Failed to load fixture inventory: %v", err)
	}
	spaces, err := inv.GetAllSpaces(ctx)
	if err != nil {
		log.Fatalf("Failed to read fixture inventory: %v", err)
	}

	for _, space := range spaces {
		var lat, lng *float64
		if space.Latitude.Valid {
			lat = &space.Latitude.Value
		}
		if space.Longitude.Valid {
			lng = &space.Longitude.Value
		}
		_, err := pool.Exec(ctx, upsertSpaceQuery,
			space.ID, space.Title, space.Location, space.Address, space.Postcode,
			lat, lng, nullable(space.What3Words), []string(space.Features),
			space.PricePerDay, space.PricePerMonth,
			space.TotalSpaces, space.BookedSpaces, nullable(space.ImageURL),
		)
		if err != nil {
			log.Fatalf("Failed to upsert space %s: %v", space.ID, err)
		}
		log.Infow("Seeded space", "id", space.ID, "title", space.Title)
	}

	log.Infow("Inventory seeded", "spaces", len(spaces))
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
