package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bariskara/product-api/internal/auth"
	"github.com/bariskara/product-api/internal/models"
	repo "github.com/bariskara/product-api/internal/repository"
	"github.com/bariskara/product-api/internal/services"
)

// in-memory repositories backing the router under test

type memUsers struct {
	mu     sync.Mutex
	byName map[string]models.User
}

func (m *memUsers) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	u := models.User{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	m.byName[username] = u
	return u, nil
}

func (m *memUsers) GetByUsername(ctx context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[username]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

type memProducts struct {
	mu          sync.Mutex
	byID        map[string]models.Product
	createCalls int
}

func (m *memProducts) Create(ctx context.Context, p models.Product) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	now := time.Now()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.byID[p.ID] = p
	return p, nil
}

func (m *memProducts) GetByID(ctx context.Context, id string) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return models.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) Update(ctx context.Context, id string, patch models.ProductUpdate) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return models.Product{}, repo.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	p.UpdatedAt = time.Now()
	m.byID[id] = p
	return p, nil
}

func (m *memProducts) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type testEnv struct {
	router   http.Handler
	tm       *auth.TokenManager
	products *memProducts
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := &memUsers{byName: map[string]models.User{}}
	products := &memProducts{byID: map[string]models.Product{}}
	tm := auth.NewTokenManager("test-secret", time.Hour)
	authSvc := services.NewAuthService(users, tm)
	productSvc := services.NewProductService(products)
	return &testEnv{
		router:   NewRouter(authSvc, productSvc, tm),
		tm:       tm,
		products: products,
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   any             `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") != "" && rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (e *testEnv) registerAndLogin(t *testing.T, username, password string) string {
	t.Helper()
	rec, _ := e.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, rec.Code)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func validProduct() map[string]any {
	return map[string]any{
		"name":        "Widget",
		"price":       9.99,
		"description": "d",
		"category":    "c",
		"imageUrl":    "u",
		"quantity":    5,
	}
}

func TestWelcomeRoute(t *testing.T) {
	e := newTestEnv(t)
	rec, _ := e.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to the Product Management API!", rec.Body.String())
}

func TestUnknownEndpoint(t *testing.T) {
	e := newTestEnv(t)
	rec, env := e.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "Endpoint not found", env.Error)
	assert.Equal(t, "Cannot GET /nope", env.Message)
}

func TestUnknownMethod(t *testing.T) {
	e := newTestEnv(t)
	rec, env := e.do(t, http.MethodDelete, "/api/login", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Cannot DELETE /api/login", env.Message)
}

func TestRegister(t *testing.T) {
	e := newTestEnv(t)
	rec, env := e.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Status)
	assert.Equal(t, "User registered successfully", env.Message)

	var data struct {
		User        models.SanitizedUser `json:"user"`
		AccessToken string               `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "alice", data.User.Username)
	assert.NotEmpty(t, data.User.ID)

	claims, err := e.tm.Verify(data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Empty(t, claims.UserID)
}

func TestRegisterDuplicate(t *testing.T) {
	e := newTestEnv(t)
	body := map[string]string{"username": "alice", "password": "secret1"}
	rec, _ := e.do(t, http.MethodPost, "/api/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := e.do(t, http.MethodPost, "/api/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "Username already exists", env.Message)
}

func TestRegisterValidation(t *testing.T) {
	e := newTestEnv(t)
	rec, env := e.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Status)
	details, ok := env.Error.([]any)
	require.True(t, ok)
	assert.Contains(t, details, `"password" length must be at least 6 characters long`)
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	rec, _ := e.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := e.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", env.Message)

	var data struct {
		User  models.SanitizedUser `json:"user"`
		Token string               `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	claims, err := e.tm.Verify(data.Token)
	require.NoError(t, err)
	assert.Equal(t, data.User.ID, claims.UserID, "login token carries the user id")
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	e := newTestEnv(t)
	rec, _ := e.do(t, http.MethodPost, "/api/register", "", map[string]string{"username": "alice", "password": "secret1"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// unknown user and wrong password produce the identical response
	for _, body := range []map[string]string{
		{"username": "nobody", "password": "secret1"},
		{"username": "alice", "password": "wrong-password"},
	} {
		rec, env := e.do(t, http.MethodPost, "/api/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, env.Status)
		assert.Equal(t, "Invalid username or password", env.Message)
	}
}

func TestProductsRequireToken(t *testing.T) {
	e := newTestEnv(t)

	rec, env := e.do(t, http.MethodGet, "/api/products/some-id", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", env.Message)

	rec, _ = e.do(t, http.MethodPost, "/api/products", "", validProduct())
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductsRejectInvalidToken(t *testing.T) {
	e := newTestEnv(t)
	rec, _ := e.do(t, http.MethodGet, "/api/products/some-id", "eyJhbGciOiJIUzI1NiJ9.bogus.sig", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Forbidden"}`, rec.Body.String())
}

func TestProductsRejectExpiredToken(t *testing.T) {
	e := newTestEnv(t)
	expired := auth.NewTokenManager("test-secret", -time.Minute)
	token, err := expired.Sign("user-1", "alice")
	require.NoError(t, err)

	rec, env := e.do(t, http.MethodGet, "/api/products/some-id", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", env.Message)
}

func TestProductValidationShortCircuits(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "alice", "secret1")

	body := validProduct()
	body["price"] = 0.5
	body["quantity"] = -1
	rec, env := e.do(t, http.MethodPost, "/api/products", token, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	details, ok := env.Error.([]any)
	require.True(t, ok)
	assert.Contains(t, details, `"price" must be greater than or equal to 1`)
	assert.Contains(t, details, `"quantity" must be greater than or equal to 0`)
	assert.Zero(t, e.products.createCalls, "repository must not be reached on validation failure")
}

func TestProductLifecycle(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "alice", "secret1")

	// create
	rec, env := e.do(t, http.MethodPost, "/api/products", token, validProduct())
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Product created successfully", env.Message)
	var created models.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, 9.99, created.Price)
	assert.Equal(t, int64(5), created.Quantity)
	assert.False(t, created.CreatedAt.IsZero())

	// fetch it back
	rec, env = e.do(t, http.MethodGet, "/api/products/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product fetched successfully", env.Message)
	var fetched models.Product
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Name, fetched.Name)

	// partial update
	rec, env = e.do(t, http.MethodPut, "/api/products/"+created.ID, token, map[string]any{"price": 19.99})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product updated successfully", env.Message)
	var updated models.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, "Widget", updated.Name, "fields not in the patch stay unchanged")
	assert.Equal(t, int64(5), updated.Quantity)

	// delete
	rec, env = e.do(t, http.MethodDelete, "/api/products/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully", env.Message)
	assert.Nil(t, env.Data)

	// gone now
	rec, env = e.do(t, http.MethodGet, "/api/products/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", env.Message)

	// deleting again stays 404
	rec, env = e.do(t, http.MethodDelete, "/api/products/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", env.Message)
}

func TestProductUpdateUnknownID(t *testing.T) {
	e := newTestEnv(t)
	token := e.registerAndLogin(t, "alice", "secret1")

	rec, env := e.do(t, http.MethodPut, "/api/products/missing", token, map[string]any{"price": 19.99})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", env.Message)
}

func TestRequestIDHeader(t *testing.T) {
	e := newTestEnv(t)
	rec, _ := e.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
