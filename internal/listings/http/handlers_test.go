package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/property-listing-backend/internal/auth"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/docstore"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/domain"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/listings/service"
	"github.com/GoSim-25-26J-441/property-listing-backend/internal/storage/redisstore"
)

type failingStore struct {
	docstore.Store
	err error
}

func (f *failingStore) Get(context.Context, string, string) (docstore.Document, error) {
	return nil, f.err
}

func (f *failingStore) Set(context.Context, string, string, docstore.Document) error {
	return f.err
}

type testEnv struct {
	router   *gin.Engine
	store    docstore.Store
	verifier *auth.DevVerifier
}

func newRouter(store docstore.Store, verifier auth.TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(service.NewPropertyService(store, verifier), service.NewUserService(store, verifier))
	h.Register(r.Group("/api"))
	return r
}

func setupEnv(t *testing.T) *testEnv {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	verifier := auth.NewDevVerifier()
	verifier.Strict = true
	verifier.Register(auth.Identity{UID: "u1", Email: "a@b.com"}, auth.Profile{DisplayName: "Ann", PhotoURL: "http://img/ann.png"})
	verifier.Register(auth.Identity{UID: "u2", Email: "c@d.com"}, auth.Profile{DisplayName: "Ben"})

	store := redisstore.New(client)
	return &testEnv{router: newRouter(store, verifier), store: store, verifier: verifier}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) userProperties(t *testing.T, uid string) []string {
	doc, err := e.store.Get(context.Background(), domain.CollectionUser, uid)
	require.NoError(t, err)
	return doc.StringSlice(domain.FieldProperties)
}

func (e *testEnv) createProperty(t *testing.T, token string, fields map[string]interface{}) string {
	body := map[string]interface{}{"idToken": token}
	for k, v := range fields {
		body[k] = v
	}
	rr := e.do(t, http.MethodPost, "/api/property", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	props := e.userProperties(t, token)
	require.NotEmpty(t, props)
	return props[len(props)-1]
}

func TestCreateUser(t *testing.T) {
	env := setupEnv(t)

	t.Run("creates record and echoes profile", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "u1"})
		require.Equal(t, http.StatusOK, rr.Code)

		var resp createUserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "a@b.com", resp.Email)
		assert.Equal(t, "Ann", resp.Name)
		assert.Equal(t, "http://img/ann.png", resp.PhotoURL)

		doc, err := env.store.Get(context.Background(), domain.CollectionUser, "u1")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", doc.String(domain.FieldEmail))
		assert.Empty(t, doc.StringSlice(domain.FieldProperties))
	})

	t.Run("invalid token is 403", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "nobody"})
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Invalid token", rr.Body.String())
	})

	t.Run("profile failure is 403", func(t *testing.T) {
		env.verifier.FailProfile("u2", errors.New("lookup failed"))
		rr := env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "u2"})
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("store failure is 500", func(t *testing.T) {
		r := newRouter(&failingStore{Store: env.store, err: errors.New("write failed")}, env.verifier)
		req, err := http.NewRequest(http.MethodPost, "/api/createUser", bytes.NewBufferString(`{"idToken":"u1"}`))
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "write failed")
	})
}

func TestGetProperty(t *testing.T) {
	env := setupEnv(t)
	env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "u1"})

	id := env.createProperty(t, "u1", map[string]interface{}{"city": "Austin", "price": 500000})

	t.Run("returns fields with id", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/property/"+id, nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, id, got["id"])
		assert.Equal(t, "Austin", got["city"])
		assert.Equal(t, float64(500000), got["price"])
		assert.Equal(t, "u1", got["ownerId"])
	})

	t.Run("missing property is 500", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/property/nope", nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestCreateProperty(t *testing.T) {
	env := setupEnv(t)
	env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "u1"})

	t.Run("invalid token is 401", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/property", map[string]interface{}{"idToken": "bad", "city": "A"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Unauthorized", rr.Body.String())
	})

	t.Run("client ownerId is ignored", func(t *testing.T) {
		id := env.createProperty(t, "u1", map[string]interface{}{"city": "A", "ownerId": "u2"})
		assert.Equal(t, []string{id}, env.userProperties(t, "u1"))

		rr := env.do(t, http.MethodGet, "/api/property/"+id, nil)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "u1", got["ownerId"])
		assert.NotContains(t, got, "idToken")
	})

	t.Run("missing user record is 500", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/property", map[string]interface{}{"idToken": "u2", "city": "A"})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestListUserProperties(t *testing.T) {
	env := setupEnv(t)
	env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "u1"})

	first := env.createProperty(t, "u1", map[string]interface{}{"city": "A"})
	second := env.createProperty(t, "u1", map[string]interface{}{"city": "B"})

	t.Run("returns properties in stored order", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/user/property", map[string]string{"idToken": "u1"})
		require.Equal(t, http.StatusOK, rr.Code)

		var got []map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, first, got[0]["id"])
		assert.Equal(t, "A", got[0]["city"])
		assert.Equal(t, second, got[1]["id"])
	})

	t.Run("invalid token is 403", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/user/property", map[string]string{"idToken": "bad"})
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Server Error", rr.Body.String())
	})

	t.Run("store failure is 403", func(t *testing.T) {
		r := newRouter(&failingStore{Store: env.store, err: errors.New("read failed")}, env.verifier)
		req, err := http.NewRequest(http.MethodPost, "/api/user/property", bytes.NewBufferString(`{"idToken":"u1"}`))
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestUpdateProperty(t *testing.T) {
	env := setupEnv(t)
	env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "u1"})
	id := env.createProperty(t, "u1", map[string]interface{}{"city": "A", "price": 100})

	t.Run("non-owner is 403", func(t *testing.T) {
		rr := env.do(t, http.MethodPut, "/api/user/property", map[string]interface{}{
			"idToken":    "u2",
			"propertyId": id,
			"property":   map[string]interface{}{"price": 1},
		})
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "Unauthorized", rr.Body.String())
	})

	t.Run("owner update", func(t *testing.T) {
		rr := env.do(t, http.MethodPut, "/api/user/property", map[string]interface{}{
			"idToken":    "u1",
			"propertyId": id,
			"property":   map[string]interface{}{"price": 200, "ownerId": "u2"},
		})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Property updated", rr.Body.String())

		doc, err := env.store.Get(context.Background(), domain.CollectionProperty, id)
		require.NoError(t, err)
		assert.Equal(t, float64(200), doc["price"])
		assert.Equal(t, "A", doc["city"])
		assert.Equal(t, "u1", doc[domain.FieldOwnerID])
	})

	t.Run("missing property and bad token are 400", func(t *testing.T) {
		rr := env.do(t, http.MethodPut, "/api/user/property", map[string]interface{}{
			"idToken": "u1", "propertyId": "nope", "property": map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = env.do(t, http.MethodPut, "/api/user/property", map[string]interface{}{
			"idToken": "bad", "propertyId": id, "property": map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteProperty(t *testing.T) {
	env := setupEnv(t)
	env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "u1"})
	id := env.createProperty(t, "u1", map[string]interface{}{"city": "A"})

	t.Run("stranger is 401", func(t *testing.T) {
		rr := env.do(t, http.MethodDelete, "/api/property", map[string]string{"idToken": "u2", "propertyId": id})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("admin may delete", func(t *testing.T) {
		other := env.createProperty(t, "u1", map[string]interface{}{"city": "B"})
		rr := env.do(t, http.MethodDelete, "/api/property", map[string]string{"idToken": "admin:u2", "propertyId": other})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{id}, env.userProperties(t, "u1"))
	})

	t.Run("owner delete then not found", func(t *testing.T) {
		rr := env.do(t, http.MethodDelete, "/api/property", map[string]string{"idToken": "u1", "propertyId": id})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Property deleted successfully", rr.Body.String())
		assert.Empty(t, env.userProperties(t, "u1"))

		rr = env.do(t, http.MethodDelete, "/api/property", map[string]string{"idToken": "u1", "propertyId": id})
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Property not found", rr.Body.String())
	})

	t.Run("invalid token is 500", func(t *testing.T) {
		rr := env.do(t, http.MethodDelete, "/api/property", map[string]string{"idToken": "bad", "propertyId": id})
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

// Walks the whole lifecycle: user creation, listing, a rejected foreign
// update and the owner's delete.
func TestListingLifecycle(t *testing.T) {
	env := setupEnv(t)

	rr := env.do(t, http.MethodPost, "/api/createUser", map[string]string{"idToken": "u1"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, env.userProperties(t, "u1"))

	id := env.createProperty(t, "u1", map[string]interface{}{"price": 500000})
	assert.Equal(t, []string{id}, env.userProperties(t, "u1"))

	rr = env.do(t, http.MethodPut, "/api/user/property", map[string]interface{}{
		"idToken": "u2", "propertyId": id, "property": map[string]interface{}{"price": 1},
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	doc, err := env.store.Get(context.Background(), domain.CollectionProperty, id)
	require.NoError(t, err)
	assert.Equal(t, float64(500000), doc["price"])
	assert.Equal(t, "u1", doc[domain.FieldOwnerID])

	rr = env.do(t, http.MethodDelete, "/api/property", map[string]string{"idToken": "u1", "propertyId": id})
	require.Equal(t, http.StatusOK, rr.Code)

	_, err = env.store.Get(context.Background(), domain.CollectionProperty, id)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	assert.Empty(t, env.userProperties(t, "u1"))
}

func TestBearerTokenWithoutBody(t *testing.T) {
	env := setupEnv(t)

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req, err := http.NewRequest(method, path, bytes.NewBufferString(body))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer u1")
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		return rr
	}

	rr := send(http.MethodPost, "/api/createUser", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	id := env.createProperty(t, "u1", map[string]interface{}{"city": "A"})

	rr = send(http.MethodPost, "/api/user/property", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0]["id"])

	rr = send(http.MethodPost, "/api/user/property", "{not json")
	assert.Equal(t, http.StatusForbidden, rr.Code, "malformed bodies are still rejected")

	rr = send(http.MethodPost, "/api/property", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Len(t, env.userProperties(t, "u1"), 2)
}
