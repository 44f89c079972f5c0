package cart

import (
	"errors"
	"io"
	"log"
	"sync"

	"storefront/internal/bus"
	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/repository/collection"
)

// ErrOutOfStock is returned when an add targets a product whose stock
// snapshot is exhausted, including wishlist rows promoted into the cart.
var ErrOutOfStock = errors.New("product out of stock")

// Service is the cart aggregate: the only mutator of the persisted cart
// collection. Every successful mutation saves the whole collection, publishes
// cartUpdated and raises a transient notice.
type Service struct {
	mu      sync.Mutex
	store   collection.Repository
	bus     *bus.Bus
	notices *notify.Center
	logger  *log.Logger
}

func New(store collection.Repository, b *bus.Bus, notices *notify.Center, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, bus: b, notices: notices, logger: logger}
}

// Items returns the current cart snapshot. A missing or corrupt collection
// reads as empty.
func (s *Service) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add puts the product in the cart with the given quantity. Re-adding a
// product that is already present overwrites its quantity rather than
// appending a second line or incrementing. The quantity is clamped to
// [1, stock] either way.
func (s *Service) Add(p domain.Product, quantity int) error {
	if p.Stock <= 0 {
		s.notices.Push(notify.SurfaceCart, "Product is out of stock!", notify.Error)
		return ErrOutOfStock
	}

	s.mu.Lock()
	lines := s.load()
	q := domain.ClampQuantity(quantity, p.Stock)

	found := false
	for i := range lines {
		if lines[i].ID == p.ID {
			lines[i].Quantity = domain.ClampQuantity(q, lines[i].Stock)
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, domain.CartLine{
			ID:       p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Price:    p.EffectivePrice(),
			Quantity: q,
			Stock:    p.Stock,
		})
	}

	if err := s.save(lines); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.bus.Publish(bus.TopicCartUpdated)
	s.notices.Push(notify.SurfaceCart, "Product added to cart!", notify.Success)
	return nil
}

// UpdateQuantity applies a delta to the matching line. The result is clamped
// to [1, stock]; over- and undershooting is silent, never an error. An
// unknown id is a no-op.
func (s *Service) UpdateQuantity(id string, delta int) error {
	s.mu.Lock()
	lines := s.load()

	changed := false
	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity = domain.ClampQuantity(lines[i].Quantity+delta, lines[i].Stock)
			changed = true
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return nil
	}

	if err := s.save(lines); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.bus.Publish(bus.TopicCartUpdated)
	return nil
}

// Remove filters the line out of the cart. The "removed" notice is
// error-styled to match how the storefront renders it; removal itself is a
// normal outcome.
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	lines := s.load()
	kept := lines[:0]
	for _, l := range lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}

	if err := s.save(kept); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.bus.Publish(bus.TopicCartUpdated)
	s.notices.Push(notify.SurfaceCart, "Product removed from cart!", notify.Error)
	return nil
}

// Clear empties the cart, both persisted and observed. Used after a
// successful order submission.
func (s *Service) Clear() error {
	s.mu.Lock()
	if err := s.save([]domain.CartLine{}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.bus.Publish(bus.TopicCartUpdated)
	return nil
}

// Total sums price times quantity over all lines at full floating precision.
// Rounding to two decimals is a display concern.
func (s *Service) Total() float64 {
	var total float64
	for _, l := range s.Items() {
		total += l.Subtotal()
	}
	return total
}

// Count is the number of distinct lines, shown in the header badge.
func (s *Service) Count() int {
	return len(s.Items())
}

func (s *Service) load() []domain.CartLine {
	lines := []domain.CartLine{}
	if err := s.store.Load(collection.Cart, &lines); err != nil {
		s.logger.Printf("cart: load error=%v", err)
	}
	return lines
}

func (s *Service) save(lines []domain.CartLine) error {
	return s.store.Save(collection.Cart, lines)
}
