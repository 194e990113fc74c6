package cart

import (
	"errors"
	"sync"

	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

var (
	ErrNotFound          = errors.New("cart item not found")
	ErrCartNotFound      = errors.New("cart not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
)

// ProductGetter is the slice of the product service the cart needs.
type ProductGetter interface {
	GetByID(id int) (product.Product, error)
}

type Repository interface {
	GetByUser(userID int) (Cart, error)
	Create(userID int) (Cart, error)
	GetItem(userID, itemID int) (CartItem, error)
	UpsertItem(cartID, productID, quantity int, price float64) (CartItem, error)
	UpdateItemQuantity(itemID, quantity int) (CartItem, error)
	RemoveItem(itemID int) error
	ClearByUser(userID int) error
	RecalculateTotal(cartID int) (float64, error)
}

// InMemoryRepository backs service and handler tests. Product details are
// joined in through the same getter the service uses.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products ProductGetter
	carts    map[int]*Cart // keyed by userID
	nextCart int
	nextItem int
}

func NewInMemoryRepository(products ProductGetter) *InMemoryRepository {
	return &InMemoryRepository{
		products: products,
		carts:    make(map[int]*Cart),
		nextCart: 1,
		nextItem: 1,
	}
}

func (r *InMemoryRepository) GetByUser(userID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return Cart{}, ErrCartNotFound
	}
	return r.snapshot(c), nil
}

func (r *InMemoryRepository) Create(userID int) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.carts[userID]; ok {
		return r.snapshot(c), nil
	}
	c := &Cart{ID: r.nextCart, UserID: userID, Items: []CartItem{}}
	r.nextCart++
	r.carts[userID] = c
	return r.snapshot(c), nil
}

func (r *InMemoryRepository) GetItem(userID, itemID int) (CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[userID]
	if !ok {
		return CartItem{}, ErrNotFound
	}
	for _, item := range c.Items {
		if item.ID == itemID {
			return r.withProduct(item), nil
		}
	}
	return CartItem{}, ErrNotFound
}

func (r *InMemoryRepository) UpsertItem(cartID, productID, quantity int, price float64) (CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items[i].Quantity += quantity
				return r.withProduct(c.Items[i]), nil
			}
		}
		item := CartItem{ID: r.nextItem, CartID: cartID, ProductID: productID, Quantity: quantity, Price: price}
		r.nextItem++
		c.Items = append(c.Items, item)
		return r.withProduct(item), nil
	}
	return CartItem{}, ErrCartNotFound
}

func (r *InMemoryRepository) UpdateItemQuantity(itemID, quantity int) (CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items[i].Quantity = quantity
				return r.withProduct(c.Items[i]), nil
			}
		}
	}
	return CartItem{}, ErrNotFound
}

func (r *InMemoryRepository) RemoveItem(itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		for i := range c.Items {
			if c.Items[i].ID == itemID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) ClearByUser(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		return ErrCartNotFound
	}
	c.Items = []CartItem{}
	c.TotalAmount = 0
	return nil
}

func (r *InMemoryRepository) RecalculateTotal(cartID int) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.carts {
		if c.ID != cartID {
			continue
		}
		total := 0.0
		for _, item := range c.Items {
			total += item.Price * float64(item.Quantity)
		}
		c.TotalAmount = total
		return total, nil
	}
	return 0, ErrCartNotFound
}

func (r *InMemoryRepository) snapshot(c *Cart) Cart {
	out := Cart{ID: c.ID, UserID: c.UserID, TotalAmount: c.TotalAmount, Items: make([]CartItem, 0, len(c.Items))}
	for _, item := range c.Items {
		out.Items = append(out.Items, r.withProduct(item))
	}
	return out
}

func (r *InMemoryRepository) withProduct(item CartItem) CartItem {
	if r.products != nil {
		if p, err := r.products.GetByID(item.ProductID); err == nil {
			item.Product = p
		}
	}
	return item
}
