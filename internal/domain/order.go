package domain

import "time"

// User is the authenticated shopper as reported by the remote API.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// UserInfo is the shipping contact block submitted with an order.
type UserInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	City    string `json:"city"`
	State   string `json:"state"`
	Street  string `json:"street"`
	UserID  string `json:"userId"`
}

// Order is the server-owned order projection returned by the remote API. The
// client never constructs one locally; after submission the server's response
// is authoritative for item identity and price.
type Order struct {
	ID            string     `json:"id"`
	Cart          []CartLine `json:"cart"`
	TotalPrice    float64    `json:"totalPrice"`
	Status        string     `json:"status"`
	PaymentMethod string     `json:"paymentMethod"`
	CreatedAt     time.Time  `json:"createdAt"`
}
