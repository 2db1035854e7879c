package httpapi

import (
	"context"
	"database/sql"
	"net/http"

	"shodart.org/internal/auth"
	"shodart.org/internal/image"
	"shodart.org/internal/obs"
	"shodart.org/internal/product"
	"shodart.org/internal/user"
)

// ReadyProbe — простая проверка готовности (например, ping БД).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// UserService is the account collaborator consumed by the HTTP layer.
type UserService interface {
	Create(ctx context.Context, in user.CreateInput) (*user.User, error)
	Update(ctx context.Context, id string, in user.UpdateInput) (*user.User, error)
	Find(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Delete(ctx context.Context, id string) error
}

// ProductService is the catalog collaborator consumed by the HTTP layer.
type ProductService interface {
	Create(ctx context.Context, in product.CreateInput) (*product.Product, error)
	Update(ctx context.Context, id string, in product.UpdateInput) (*product.Product, error)
	Find(ctx context.Context, id string) (*product.Product, error)
	List(ctx context.Context) ([]*product.Product, error)
	Delete(ctx context.Context, id string) error
}

// ImageService is the binary asset collaborator consumed by the HTTP layer.
type ImageService interface {
	Upload(ctx context.Context, up image.Upload) (*image.Image, error)
	Find(ctx context.Context, id string) (*image.Image, error)
}

// Deps bundles the collaborators the API dispatches into.
type Deps struct {
	Auth     *auth.Authenticator
	Resolver *auth.Resolver
	Users    UserService
	Products ProductService
	Images   ImageService
}

// API — HTTP слой.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	authn    *auth.Authenticator
	resolver *auth.Resolver
	users    UserService
	products ProductService
	images   ImageService
}

func New(rp ReadyProbe, version string, deps Deps) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		authn:      deps.Auth,
		resolver:   deps.Resolver,
		users:      deps.Users,
		products:   deps.Products,
		images:     deps.Images,
	}

	// health/ready/info
	a.mux.HandleFunc("GET /healthz", a.Healthz)
	a.mux.HandleFunc("GET /readyz", a.Ready)
	a.mux.HandleFunc("GET /v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("GET /metrics", obs.Handler())

	// Every route below names its guard chain explicitly: bearer
	// resolution first, then the role or capability check. The first
	// failing guard terminates the request.
	a.mux.HandleFunc("POST /auth/login", a.handleLogin)

	a.mux.Handle("GET /users", chain(http.HandlerFunc(a.handleUsersList),
		a.Authenticate, RequireRole(auth.RoleRoot, auth.RoleManager)))
	a.mux.Handle("GET /users/{id}", chain(http.HandlerFunc(a.handleUserGet),
		a.Authenticate, RequireRole(auth.RoleRoot, auth.RoleManager)))
	a.mux.Handle("POST /users", chain(http.HandlerFunc(a.handleUserCreate),
		a.Authenticate, RequireRole(auth.RoleRoot)))
	a.mux.Handle("PUT /users/{id}", chain(http.HandlerFunc(a.handleUserUpdate),
		a.Authenticate, RequireRole(auth.RoleRoot)))
	a.mux.Handle("DELETE /users/{id}", chain(http.HandlerFunc(a.handleUserDelete),
		a.Authenticate, RequireRole(auth.RoleRoot)))

	// Catalog reads are public; writes need the product-edit capability.
	a.mux.HandleFunc("GET /products", a.handleProductsList)
	a.mux.HandleFunc("GET /products/{id}", a.handleProductGet)
	a.mux.Handle("POST /products", chain(http.HandlerFunc(a.handleProductCreate),
		a.Authenticate, RequireCapability(auth.CapabilityEditProducts)))
	a.mux.Handle("PUT /products/{id}", chain(http.HandlerFunc(a.handleProductUpdate),
		a.Authenticate, RequireCapability(auth.CapabilityEditProducts)))
	a.mux.Handle("DELETE /products/{id}", chain(http.HandlerFunc(a.handleProductDelete),
		a.Authenticate, RequireCapability(auth.CapabilityEditProducts)))

	// Uploads need a valid bearer token but no particular role; serving
	// stays public so product pages can embed the URLs.
	a.mux.Handle("POST /images/upload", chain(http.HandlerFunc(a.handleImageUpload),
		a.Authenticate))
	a.mux.Handle("POST /images/upload-multiple", chain(http.HandlerFunc(a.handleImageUploadMultiple),
		a.Authenticate))
	a.mux.HandleFunc("GET /images/{id}", a.handleImageGet)

	return a
}

// Middleware wraps a handler with one request-time check or behavior.
type Middleware func(http.Handler) http.Handler

// chain composes middleware around a handler in declaration order: the
// first element runs first.
func chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Handler возвращает http.Handler для сервера (без доп. аргументов).
func (a *API) Handler() http.Handler {
	h := http.Handler(a.mux)
	h = MaxBodyBytes(h, 64<<20)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = RateLimit(h, 50, 25)
	h = LoggingJSON(h)
	h = RequestID(h)
	// оборачиваем весь стек метриками
	return obs.Instrument(h)
}
