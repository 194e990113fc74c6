package cart

import (
	"errors"
	"testing"

	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

type failingProductGetter struct {
	err error
}

func (g failingProductGetter) GetByID(id int) (product.Product, error) {
	return product.Product{}, g.err
}

func newTestService() (*Service, *product.InMemoryRepository) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Cotton T-Shirt", Price: 499, Stock: 10, Category: "clothing"},
		{ID: 2, Name: "Running Shoes", Price: 2199, Stock: 2, Category: "footwear"},
	})
	repo := NewInMemoryRepository(products)
	return NewService(repo, products), products
}

func TestAddItem_Totals(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddItem(7, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	c, err := svc.GetOrCreate(7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.TotalAmount != 998 {
		t.Fatalf("expected total 998, got %v", c.TotalAmount)
	}

	// adding the same product merges lines and re-totals
	if _, err := svc.AddItem(7, 1, 1); err != nil {
		t.Fatalf("second add: %v", err)
	}
	c, _ = svc.GetOrCreate(7)
	if len(c.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 || c.TotalAmount != 1497 {
		t.Fatalf("expected qty 3 total 1497, got qty %d total %v", c.Items[0].Quantity, c.TotalAmount)
	}
}

func TestAddItem_DefaultsQuantity(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.AddItem(1, 1, 0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", item.Quantity)
	}
}

func TestAddItem_UnknownProduct(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddItem(1, 99, 1); err != product.ErrNotFound {
		t.Fatalf("expected product.ErrNotFound, got %v", err)
	}
}

func TestAddItem_ProductLookupFailure(t *testing.T) {
	lookupErr := errors.New("connection refused")
	svc := NewService(NewInMemoryRepository(failingProductGetter{err: lookupErr}), failingProductGetter{err: lookupErr})

	// a storage failure must not be reported as a missing product
	if _, err := svc.AddItem(1, 1, 1); err != lookupErr {
		t.Fatalf("expected lookup error passed through, got %v", err)
	}
}

func TestAddItem_InsufficientStock(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.AddItem(1, 2, 3); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.AddItem(5, 1, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated, err := svc.UpdateItemQuantity(5, item.ID, 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", updated.Quantity)
	}
	c, _ := svc.GetOrCreate(5)
	if c.TotalAmount != 1996 {
		t.Fatalf("expected total 1996, got %v", c.TotalAmount)
	}

	if _, err := svc.UpdateItemQuantity(5, item.ID, 0); err != ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.UpdateItemQuantity(5, item.ID, 11); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
}

func TestUpdateItemQuantity_OtherUsersItem(t *testing.T) {
	svc, _ := newTestService()

	item, err := svc.AddItem(1, 1, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.UpdateItemQuantity(2, item.ID, 2); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign item, got %v", err)
	}
}

func TestRemoveItemAndClear(t *testing.T) {
	svc, _ := newTestService()

	first, _ := svc.AddItem(3, 1, 1)
	if _, err := svc.AddItem(3, 2, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.RemoveItem(3, first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	c, _ := svc.GetOrCreate(3)
	if len(c.Items) != 1 || c.TotalAmount != 2199 {
		t.Fatalf("expected one line totalling 2199, got %+v", c)
	}

	if err := svc.Clear(3); err != nil {
		t.Fatalf("clear: %v", err)
	}
	c, _ = svc.GetOrCreate(3)
	if len(c.Items) != 0 || c.TotalAmount != 0 {
		t.Fatalf("expected empty cart, got %+v", c)
	}
}
