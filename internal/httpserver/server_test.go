package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/bus"
	"storefront/internal/domain"
	"storefront/internal/notify"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
	sessionsvc "storefront/internal/service/session"
	statussvc "storefront/internal/service/status"
	wishlistsvc "storefront/internal/service/wishlist"
	"storefront/internal/shopapi"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Load(name string, v interface{}) error {
	if b, ok := m.data[name]; ok {
		return json.Unmarshal(b, v)
	}
	return nil
}

func (m *memStore) Save(name string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[name] = b
	return nil
}

// stubShop stands in for the remote API across products, auth, orders and
// payments.
type stubShop struct {
	products   map[string]domain.Product
	loginToken string
	loginErr   error
	user       *domain.User
	userErr    error
	serverCart []domain.CartLine
	placeErr   error
	placeCalls int
	orders     []domain.Order
}

func (s *stubShop) ListProducts(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *stubShop) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubShop) Login(_ context.Context, _, _ string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.loginToken, nil
}

func (s *stubShop) Register(_ context.Context, _ shopapi.RegisterInput) error {
	return nil
}

func (s *stubShop) CurrentUser(_ context.Context, _ string) (*domain.User, error) {
	if s.userErr != nil {
		return nil, s.userErr
	}
	return s.user, nil
}

func (s *stubShop) PlaceOrder(_ context.Context, _ string, _ shopapi.OrderInput) ([]domain.CartLine, error) {
	s.placeCalls++
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	return s.serverCart, nil
}

func (s *stubShop) ListOrders(_ context.Context, _, _ string) ([]domain.Order, error) {
	return s.orders, nil
}

func (s *stubShop) SubmitPayment(_ context.Context, _ string, _ float64) error {
	return nil
}

type testEnv struct {
	router *gin.Engine
	shop   *stubShop
	cart   *cartsvc.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	shop := &stubShop{
		products: map[string]domain.Product{
			"p1": {ID: "p1", Name: "Mug", Image: "mug.jpg", Price: 10, Stock: 5},
			"p2": {ID: "p2", Name: "Cap", Image: "cap.jpg", Price: 20, DiscountPrice: 15, Stock: 3},
			"p0": {ID: "p0", Name: "Gone", Image: "gone.jpg", Price: 5, Stock: 0},
		},
		loginToken: "tok-1",
		user:       &domain.User{ID: "u1", Username: "jo", Email: "jo@example.com"},
		serverCart: []domain.CartLine{{ID: "srv-p1", Name: "Mug (server)", Price: 10, Quantity: 2, Stock: 5}},
	}

	store := newMemStore()
	b := bus.New()
	notices := notify.NewCenter()
	cart := cartsvc.New(store, b, notices, nil)
	wishlist := wishlistsvc.New(store, b, notices, nil)

	deps := Deps{
		Shop:           shop,
		Sessions:       sessionsvc.New(shop),
		Cart:           cart,
		Wishlist:       wishlist,
		Status:         statussvc.New(store),
		Checkout:       checkoutsvc.New(cart, shop, notices, nil),
		Notices:        notices,
		Bus:            b,
		ImageURLHost:   "http://api.example.com",
		AllowedOrigins: []string{"http://localhost:3000"},
		CookieSecure:   true,
	}
	router, err := buildRouter(nil, deps)
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}
	return &testEnv{router: router, shop: shop, cart: cart}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "tok-1"})
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
