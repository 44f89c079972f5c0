package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"storefront/internal/bus"
	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/service/cart"
	"storefront/internal/service/checkout"
	"storefront/internal/service/session"
	"storefront/internal/service/status"
	"storefront/internal/service/wishlist"
	"storefront/internal/shopapi"
)

// shopAPI is the slice of the remote API the HTTP layer talks to directly.
type shopAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	Login(ctx context.Context, credential, password string) (string, error)
	Register(ctx context.Context, in shopapi.RegisterInput) error
	ListOrders(ctx context.Context, token, userID string) ([]domain.Order, error)
	SubmitPayment(ctx context.Context, paymentMethodID string, amount float64) error
}

// Deps carries everything the routes need.
type Deps struct {
	Shop     shopAPI
	Sessions *session.Service
	Cart     *cart.Service
	Wishlist *wishlist.Service
	Status   *status.Service
	Checkout *checkout.Service
	Notices  *notify.Center
	Bus      *bus.Bus

	ImageURLHost   string
	AllowedOrigins []string
	CookieSecure   bool
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

// New builds a Server with the storefront routes.
func New(addr string, logger *log.Logger, deps Deps) (*Server, error) {
	router, err := buildRouter(logger, deps)
	if err != nil {
		return nil, err
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
