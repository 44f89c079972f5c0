package wishlist

import (
	"io"
	"log"
	"sync"

	"storefront/internal/bus"
	"storefront/internal/domain"
	"storefront/internal/notify"
	"storefront/internal/repository/collection"
)

// Service is the wishlist aggregate. Unlike the cart there is no quantity:
// membership is the only state, and duplicate adds are an informational no-op.
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

// Items returns the current wishlist snapshot.
func (s *Service) Items() []domain.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add appends a snapshot of the product unless it is already present, in
// which case nothing changes and an informational notice is raised instead.
// The wishlistUpdated event is only published after the collection has been
// persisted, so subscribers re-reading the store always observe the add.
func (s *Service) Add(p domain.Product) error {
	s.mu.Lock()
	items := s.load()
	for _, it := range items {
		if it.ID == p.ID {
			s.mu.Unlock()
			s.notices.Push(notify.SurfaceWishlist, "Product already in wishlist!", notify.Info)
			return nil
		}
	}

	items = append(items, domain.WishlistItem{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
		Price: p.EffectivePrice(),
		Stock: p.Stock,
	})
	if err := s.save(items); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.bus.Publish(bus.TopicWishlistUpdated)
	s.notices.Push(notify.SurfaceWishlist, "Product added to wishlist!", notify.Success)
	return nil
}

// Remove filters the item out, persists and notifies.
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	items := s.load()
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}

	if err := s.save(kept); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.bus.Publish(bus.TopicWishlistUpdated)
	s.notices.Push(notify.SurfaceWishlist, "Product removed from wishlist!", notify.Info)
	return nil
}

// Get returns the stored snapshot for a wishlist member, used when a row is
// promoted into the cart.
func (s *Service) Get(id string) (domain.WishlistItem, bool) {
	for _, it := range s.Items() {
		if it.ID == id {
			return it, true
		}
	}
	return domain.WishlistItem{}, false
}

// Count is the number of wishlist items, shown in the header badge.
func (s *Service) Count() int {
	return len(s.Items())
}

func (s *Service) load() []domain.WishlistItem {
	items := []domain.WishlistItem{}
	if err := s.store.Load(collection.Wishlist, &items); err != nil {
		s.logger.Printf("wishlist: load error=%v", err)
	}
	return items
}

func (s *Service) save(items []domain.WishlistItem) error {
	return s.store.Save(collection.Wishlist, items)
}
