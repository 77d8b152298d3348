package bootstrap

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/property-listing-backend/config"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/storage/firestoredb"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/storage/mongodb"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/storage/postgres"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/storage/redisstore"
)

// OpenStore connects the configured document store backend. app is only
// needed for the firestore backend. The returned func releases the connection.
func OpenStore(ctx context.Context, cfg *config.Config, app *firebase.App) (docstore.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreFirestore:
		if app == nil {
			return nil, nil, fmt.Errorf("firestore store requires a Firebase app")
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("firestore client: %w", err)
		}
		return firestoredb.New(client), func() { _ = client.Close() }, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return redisstore.New(client), func() { _ = client.Close() }, nil

	case config.StorePostgres:
		pool, err := OpenDB(ctx, DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxConns),
		})
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.New(pool), pool.Close, nil

	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("mongo disconnect: %v", err)
			}
		}
		return mongodb.New(client.Database(cfg.Mongo.Database)), closer, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
