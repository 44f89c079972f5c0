package collection

import (
	"os"
	"path/filepath"
	"testing"

	"storefront/internal/domain"
)

func TestFile_SaveAndLoad(t *testing.T) {
	repo := testRepo(t)

	in := []domain.CartLine{
		{ID: "p1", Name: "Mug", Image: "mug.jpg", Price: 9.99, Quantity: 2, Stock: 5},
	}
	if err := repo.Save(Cart, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out []domain.CartLine
	if err := repo.Load(Cart, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 line, got %d", len(out))
	}
	if out[0] != in[0] {
		t.Fatalf("round trip mismatch %+v", out[0])
	}
}

func TestFile_LoadAbsentIsEmpty(t *testing.T) {
	repo := testRepo(t)

	out := []domain.CartLine{}
	if err := repo.Load(Cart, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty collection, got %d items", len(out))
	}
}

func TestFile_LoadCorruptIsEmpty(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFile(dir, nil)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "cart.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	out := []domain.CartLine{}
	if err := repo.Load(Cart, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected corrupt collection to resolve empty, got %d items", len(out))
	}
}

func TestFile_SaveOverwritesWholeCollection(t *testing.T) {
	repo := testRepo(t)

	first := []domain.WishlistItem{{ID: "p1"}, {ID: "p2"}}
	if err := repo.Save(Wishlist, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := []domain.WishlistItem{{ID: "p3"}}
	if err := repo.Save(Wishlist, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out []domain.WishlistItem
	if err := repo.Load(Wishlist, &out); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 1 || out[0].ID != "p3" {
		t.Fatalf("expected last write to win, got %+v", out)
	}
}

func TestFile_RejectsBadName(t *testing.T) {
	repo := testRepo(t)
	if err := repo.Save("../escape", []string{}); err == nil {
		t.Fatalf("expected error for path-like name")
	}
}

func testRepo(t *testing.T) Repository {
	t.Helper()
	repo, err := NewFile(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	return repo
}
