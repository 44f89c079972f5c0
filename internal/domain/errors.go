package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrNoSession indicates a cart-sensitive flow was entered without a
	// stored access credential.
	ErrNoSession = errors.New("no active session")
	// ErrEmptyCart indicates checkout was entered or submitted with nothing
	// in the cart.
	ErrEmptyCart = errors.New("cart is empty")
)
