package shopapi

import (
	"time"

	"storefront/internal/domain"
)

// The API mixes two generations of payloads: Mongo-era documents carry `_id`
// and an `images` array, newer ones carry `id` and a single `image`. The wire
// types accept both and normalize() picks whichever is populated, so the rest
// of the app only ever sees the canonical shape.

type wireProduct struct {
	MongoID       string   `json:"_id"`
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Price         float64  `json:"price"`
	DiscountPrice float64  `json:"discountPrice"`
	Stock         int      `json:"stock"`
}

func (w wireProduct) normalize() domain.Product {
	image := w.Image
	if image == "" && len(w.Images) > 0 {
		image = w.Images[0]
	}
	return domain.Product{
		ID:            firstNonEmpty(w.MongoID, w.ID),
		Name:          w.Name,
		Description:   w.Description,
		Image:         image,
		Price:         w.Price,
		DiscountPrice: w.DiscountPrice,
		Stock:         w.Stock,
	}
}

type wireUser struct {
	MongoID     string `json:"_id"`
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (w wireUser) normalize() domain.User {
	return domain.User{
		ID:          firstNonEmpty(w.MongoID, w.ID),
		Username:    w.Username,
		Email:       w.Email,
		PhoneNumber: w.PhoneNumber,
	}
}

type wireCartLine struct {
	MongoID  string  `json:"_id"`
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Stock    int     `json:"stock"`
}

func (w wireCartLine) normalize() domain.CartLine {
	return domain.CartLine{
		ID:       firstNonEmpty(w.MongoID, w.ID),
		Name:     w.Name,
		Image:    w.Image,
		Price:    w.Price,
		Quantity: w.Quantity,
		Stock:    w.Stock,
	}
}

type wireOrder struct {
	MongoID       string         `json:"_id"`
	ID            string         `json:"id"`
	Cart          []wireCartLine `json:"cart"`
	TotalPrice    float64        `json:"totalPrice"`
	Status        string         `json:"status"`
	PaymentMethod string         `json:"paymentMethod"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (w wireOrder) normalize() domain.Order {
	lines := make([]domain.CartLine, 0, len(w.Cart))
	for _, wl := range w.Cart {
		lines = append(lines, wl.normalize())
	}
	return domain.Order{
		ID:            firstNonEmpty(w.MongoID, w.ID),
		Cart:          lines,
		TotalPrice:    w.TotalPrice,
		Status:        w.Status,
		PaymentMethod: w.PaymentMethod,
		CreatedAt:     w.CreatedAt,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
