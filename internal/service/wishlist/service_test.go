package wishlist

import (
	"encoding/json"
	"testing"

	"storefront/internal/bus"
	"storefront/internal/domain"
	"storefront/internal/notify"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Load(name string, v interface{}) error {
	if b, ok := m.data[name]; ok {
		if err := json.Unmarshal(b, v); err != nil {
			return nil
		}
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

func newService() (*Service, *bus.Bus, *notify.Center) {
	b := bus.New()
	n := notify.NewCenter()
	return New(newMemStore(), b, n, nil), b, n
}

func TestAdd_IsIdempotent(t *testing.T) {
	svc, b, notices := newService()
	var events int
	b.Subscribe(bus.TopicWishlistUpdated, func() { events++ })
	p := domain.Product{ID: "p1", Name: "Mug", Price: 10, Stock: 5}

	if err := svc.Add(p); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := svc.Add(p); err != nil {
		t.Fatalf("second Add: %v", err)
	}

	if got := svc.Count(); got != 1 {
		t.Fatalf("expected 1 item after duplicate add, got %d", got)
	}
	if events != 1 {
		t.Fatalf("duplicate add must not publish, got %d events", events)
	}
	notice, ok := notices.Current(notify.SurfaceWishlist)
	if !ok || notice.Type != notify.Info {
		t.Fatalf("expected info notice on duplicate add, got %+v ok=%v", notice, ok)
	}
	if notice.Message != "Product already in wishlist!" {
		t.Fatalf("unexpected message %q", notice.Message)
	}
}

func TestAdd_SnapshotsEffectivePrice(t *testing.T) {
	svc, _, _ := newService()
	if err := svc.Add(domain.Product{ID: "p1", Price: 20, DiscountPrice: 15, Stock: 2}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	items := svc.Items()
	if len(items) != 1 || items[0].Price != 15 {
		t.Fatalf("expected discounted snapshot price, got %+v", items)
	}
}

func TestRemove_FiltersAndPublishes(t *testing.T) {
	svc, b, notices := newService()
	if err := svc.Add(domain.Product{ID: "p1", Stock: 2}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	var events int
	b.Subscribe(bus.TopicWishlistUpdated, func() { events++ })

	if err := svc.Remove("p1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	if got := svc.Count(); got != 0 {
		t.Fatalf("expected empty wishlist, got %d", got)
	}
	if events != 1 {
		t.Fatalf("expected wishlistUpdated publish, got %d", events)
	}
	if notice, ok := notices.Current(notify.SurfaceWishlist); !ok || notice.Type != notify.Info {
		t.Fatalf("expected info removal notice, got %+v ok=%v", notice, ok)
	}
}

func TestGet_ReturnsStoredSnapshot(t *testing.T) {
	svc, _, _ := newService()
	if err := svc.Add(domain.Product{ID: "p1", Name: "Mug", Image: "mug.jpg", Price: 9, Stock: 3}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	item, ok := svc.Get("p1")
	if !ok {
		t.Fatalf("expected item present")
	}
	product := item.Product()
	if product.ID != "p1" || product.Stock != 3 || product.Price != 9 {
		t.Fatalf("unexpected promoted product %+v", product)
	}

	if _, ok := svc.Get("ghost"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}
