package wishlist

import (
	"errors"
	"sync"

	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

var (
	ErrNotFound      = errors.New("product not found in wishlist")
	ErrAlreadyExists = errors.New("product already in wishlist")
)

type ProductGetter interface {
	GetByID(id int) (product.Product, error)
}

type Repository interface {
	ListByUser(userID int) ([]Entry, error)
	Add(userID, productID int, createdAt string) (Entry, error)
	Remove(userID, productID int) error
	Exists(userID, productID int) (bool, error)
}

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products ProductGetter
	entries  []Entry
	nextID   int
}

func NewInMemoryRepository(products ProductGetter) *InMemoryRepository {
	return &InMemoryRepository{products: products, nextID: 1}
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0)
	// newest first
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].UserID == userID {
			out = append(out, r.withProduct(r.entries[i]))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Add(userID, productID int, createdAt string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.UserID == userID && e.ProductID == productID {
			return Entry{}, ErrAlreadyExists
		}
	}
	e := Entry{ID: r.nextID, UserID: userID, ProductID: productID, CreatedAt: createdAt}
	r.nextID++
	r.entries = append(r.entries, e)
	return r.withProduct(e), nil
}

func (r *InMemoryRepository) Remove(userID, productID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.UserID == userID && e.ProductID == productID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Exists(userID, productID int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.UserID == userID && e.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryRepository) withProduct(e Entry) Entry {
	if r.products != nil {
		if p, err := r.products.GetByID(e.ProductID); err == nil {
			e.Product = p
		}
	}
	return e
}
