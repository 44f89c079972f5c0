// Package shopapi is the HTTP client for the remote shop API. It is the only
// place that sees the API's wire shapes; everything it returns is normalized
// into internal/domain types.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"storefront/internal/domain"
)

type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// New builds a Client for the API rooted at baseURL (e.g. "http://host/api").
func New(baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

// ListProducts fetches the catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var body struct {
		Data []wireProduct `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &body); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(body.Data))
	for _, wp := range body.Data {
		products = append(products, wp.normalize())
	}
	return products, nil
}

// GetProduct fetches one product by id. A missing product surfaces as
// domain.ErrNotFound.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var wp wireProduct
	if err := c.do(ctx, http.MethodGet, "/products/"+id, "", nil, &wp); err != nil {
		return nil, err
	}
	p := wp.normalize()
	return &p, nil
}

// Login exchanges a credential/password pair for an access token.
func (c *Client) Login(ctx context.Context, credential, password string) (string, error) {
	req := map[string]string{"credential": credential, "password": password}
	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login: empty access token in response")
	}
	return resp.AccessToken, nil
}

// RegisterInput mirrors the register endpoint's request body.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", "", in, nil)
}

// CurrentUser resolves the bearer token to its user.
func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var wu wireUser
	if err := c.do(ctx, http.MethodGet, "/user/me", token, nil, &wu); err != nil {
		return nil, err
	}
	u := wu.normalize()
	return &u, nil
}

// OrderInput is the order submission payload. The cart is the client's
// snapshot; the response cart is the server's authoritative version.
type OrderInput struct {
	UserInfo      domain.UserInfo   `json:"userInfo"`
	Cart          []domain.CartLine `json:"cart"`
	TotalPrice    float64           `json:"totalPrice"`
	PaymentMethod string            `json:"paymentMethod"`
}

// PlaceOrder submits the order and returns the server's cart projection.
func (c *Client) PlaceOrder(ctx context.Context, token string, in OrderInput) ([]domain.CartLine, error) {
	var resp struct {
		Cart []wireCartLine `json:"cart"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", token, in, &resp); err != nil {
		return nil, err
	}
	lines := make([]domain.CartLine, 0, len(resp.Cart))
	for _, wl := range resp.Cart {
		lines = append(lines, wl.normalize())
	}
	return lines, nil
}

// ListOrders fetches the user's order history.
func (c *Client) ListOrders(ctx context.Context, token, userID string) ([]domain.Order, error) {
	var wire []wireOrder
	if err := c.do(ctx, http.MethodGet, "/orders/get-orders/"+userID, token, nil, &wire); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(wire))
	for _, wo := range wire {
		orders = append(orders, wo.normalize())
	}
	return orders, nil
}

// SubmitPayment posts a confirmed payment method to the payment endpoint.
func (c *Client) SubmitPayment(ctx context.Context, paymentMethodID string, amount float64) error {
	req := map[string]interface{}{
		"paymentMethodId": paymentMethodID,
		"amount":          amount,
	}
	return c.do(ctx, http.MethodPost, "/payments", "", req, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("shop api: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("shop api: %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shop api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Printf("shop api: %s %s status=%d", method, path, resp.StatusCode)
		return fmt.Errorf("shop api: %s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("shop api: decode %s %s: %w", method, path, err)
	}
	return nil
}
