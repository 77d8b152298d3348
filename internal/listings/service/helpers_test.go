package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/auth"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/storage/redisstore"
)

var errStoreDown = errors.New("store unavailable")

// flakyStore fails Get for the listed property ids.
type flakyStore struct {
	docstore.Store
	failGet map[string]bool
}

func (f *flakyStore) Get(ctx context.Context, collection, id string) (docstore.Document, error) {
	if f.failGet[id] {
		return nil, errStoreDown
	}
	return f.Store.Get(ctx, collection, id)
}

func setupStore(t *testing.T) docstore.Store {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.New(client)
}

func setupVerifier() *auth.DevVerifier {
	v := auth.NewDevVerifier()
	v.Strict = true
	v.Register(auth.Identity{UID: "u1", Email: "a@b.com"}, auth.Profile{DisplayName: "Ann", PhotoURL: "http://img/ann.png"})
	v.Register(auth.Identity{UID: "u2", Email: "c@d.com"}, auth.Profile{DisplayName: "Ben"})
	v.Register(auth.Identity{UID: "root", Email: "root@admin.com", Admin: true}, auth.Profile{DisplayName: "Root"})
	return v
}
