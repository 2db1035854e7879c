package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"shodart.org/internal/auth"
	"shodart.org/internal/image"
	"shodart.org/internal/product"
	"shodart.org/internal/user"
)

// memCreds is an in-memory CredentialStore shared with the test so
// records can be mutated between requests.
type memCreds struct {
	mu       sync.Mutex
	byID     map[string]*auth.Credential
	failWith error
}

func (m *memCreds) FindByID(_ context.Context, id string) (*auth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	cred, ok := m.byID[id]
	if !ok {
		return nil, auth.ErrNotFound
	}
	return cred, nil
}

func (m *memCreds) FindByLogin(_ context.Context, login string) (*auth.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, cred := range m.byID {
		if cred.Login == login {
			return cred, nil
		}
	}
	return nil, auth.ErrNotFound
}

type memUsers struct {
	mu    sync.Mutex
	seq   int
	items map[string]*user.User
}

func newMemUsers() *memUsers {
	return &memUsers{items: map[string]*user.User{}}
}

func (m *memUsers) Create(_ context.Context, in user.CreateInput) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.items {
		if u.Login == in.Login {
			return nil, user.ErrLoginExists
		}
	}
	m.seq++
	u := &user.User{
		ID:                 fmt.Sprintf("u-%d", m.seq),
		Login:              in.Login,
		PasswordHash:       "$2a$10$fake",
		Role:               in.Role,
		CanEditProducts:    in.CanEditProducts,
		CanManageLogistics: in.CanManageLogistics,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	m.items[u.ID] = u
	return u, nil
}

func (m *memUsers) Update(_ context.Context, id string, in user.UpdateInput) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	if in.Login != nil {
		u.Login = *in.Login
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.CanEditProducts != nil {
		u.CanEditProducts = *in.CanEditProducts
	}
	return u, nil
}

func (m *memUsers) Find(_ context.Context, id string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.items[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) List(_ context.Context) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*user.User, 0, len(m.items))
	for _, u := range m.items {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return user.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memProducts struct {
	mu    sync.Mutex
	seq   int
	items map[string]*product.Product
}

func newMemProducts() *memProducts {
	return &memProducts{items: map[string]*product.Product{}}
}

func (m *memProducts) Create(_ context.Context, in product.CreateInput) (*product.Product, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", product.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	p := &product.Product{
		ID:          fmt.Sprintf("p-%d", m.seq),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Width:       in.Width,
		Height:      in.Height,
		Quantity:    in.Quantity,
		ImageURLs:   in.ImageURLs,
	}
	m.items[p.ID] = p
	return p, nil
}

func (m *memProducts) Update(_ context.Context, id string, in product.UpdateInput) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	return p, nil
}

func (m *memProducts) Find(_ context.Context, id string) (*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) List(_ context.Context) ([]*product.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*product.Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return product.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memImageStore struct {
	mu    sync.Mutex
	items map[string]*image.Image
}

func (m *memImageStore) Create(_ context.Context, img *image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[img.ID] = img
	return nil
}

func (m *memImageStore) Find(_ context.Context, id string) (*image.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.items[id]
	if !ok {
		return nil, image.ErrNotFound
	}
	return img, nil
}

type testServer struct {
	handler http.Handler
	creds   *memCreds
	codec   *auth.TokenCodec
	users   *memUsers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	creds := &memCreds{byID: map[string]*auth.Credential{}}
	codec, err := auth.NewTokenCodec("0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}
	authn, err := auth.NewAuthenticator(creds, codec)
	if err != nil {
		t.Fatalf("NewAuthenticator: %v", err)
	}
	resolver, err := auth.NewResolver(creds, codec)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	imgSvc, err := image.NewService(&memImageStore{items: map[string]*image.Image{}}, t.TempDir())
	if err != nil {
		t.Fatalf("image.NewService: %v", err)
	}

	users := newMemUsers()
	api := New(ReadyProbe{}, "test", Deps{
		Auth:     authn,
		Resolver: resolver,
		Users:    users,
		Products: newMemProducts(),
		Images:   imgSvc,
	})
	return &testServer{handler: api.Handler(), creds: creds, codec: codec, users: users}
}

func (ts *testServer) addCredential(t *testing.T, login, password string, role auth.Role, editProducts bool) *auth.Credential {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	cred := &auth.Credential{
		ID:              "cred-" + login,
		Login:           login,
		PasswordHash:    hash,
		Role:            role,
		CanEditProducts: editProducts,
	}
	ts.creds.mu.Lock()
	ts.creds.byID[cred.ID] = cred
	ts.creds.mu.Unlock()
	return cred
}

func (ts *testServer) token(t *testing.T, cred *auth.Credential) string {
	t.Helper()
	tok, _, err := ts.codec.Issue(cred)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return tok
}

func (ts *testServer) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/nope", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestWrongMethodIs405(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodPatch, "/auth/login", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
