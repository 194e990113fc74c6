package order

import (
	"sync"

	"github.com/selvakumar-dev/shopkart-backend/internal/bank"
	"github.com/selvakumar-dev/shopkart-backend/internal/cart"
	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

// Repository persists orders. Settle applies the whole Step B write set as
// one unit and reports which guard failed, if any.
type Repository interface {
	Create(ord Order, items []OrderItem) (Order, error)
	GetByID(orderID, userID int) (Order, error)
	ListByUser(userID int) ([]Order, error)
	GetPending(orderID, userID int) (Order, error)
	MarkPaymentFailed(orderID int, details PaymentDetails, updatedAt string) error
	Settle(s Settlement) (Order, *float64, error)
}

// InMemoryRepository wires the in-memory cart, product and bank stores
// together so orchestrator tests can run the full settlement sequence.
type InMemoryRepository struct {
	mu        sync.Mutex
	orders    []Order
	nextOrder int
	nextItem  int

	carts    *cart.InMemoryRepository
	products *product.InMemoryRepository
	banks    *bank.InMemoryRepository
}

func NewInMemoryRepository(carts *cart.InMemoryRepository, products *product.InMemoryRepository, banks *bank.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{
		nextOrder: 1,
		nextItem:  1,
		carts:     carts,
		products:  products,
		banks:     banks,
	}
}

func (r *InMemoryRepository) Create(ord Order, items []OrderItem) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord.ID = r.nextOrder
	r.nextOrder++
	ord.Items = make([]OrderItem, 0, len(items))
	for _, item := range items {
		item.ID = r.nextItem
		r.nextItem++
		item.OrderID = ord.ID
		ord.Items = append(ord.Items, item)
	}
	r.orders = append(r.orders, ord)
	return r.withProducts(ord), nil
}

func (r *InMemoryRepository) GetByID(orderID, userID int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ord := range r.orders {
		if ord.ID == orderID && ord.UserID == userID {
			return r.withProducts(ord), nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	// newest first
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.withProducts(r.orders[i]))
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetPending(orderID, userID int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord := r.find(orderID, userID)
	if ord == nil || ord.Status != StatusPending || ord.PaymentStatus != PaymentPending {
		return Order{}, ErrNotFound
	}
	return r.withProducts(*ord), nil
}

func (r *InMemoryRepository) MarkPaymentFailed(orderID int, details PaymentDetails, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.orders {
		if r.orders[i].ID == orderID {
			d := details
			r.orders[i].PaymentStatus = PaymentFailed
			r.orders[i].PaymentDetails = &d
			r.orders[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Settle(s Settlement) (Order, *float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord := r.find(s.OrderID, s.UserID)
	if ord == nil || ord.Status != StatusPending || ord.PaymentStatus != PaymentPending {
		return Order{}, nil, ErrNotFound
	}

	// every guard runs before any write so a failed settlement leaves
	// balances and stock untouched
	stocks := make(map[int]int, len(ord.Items))
	for _, item := range ord.Items {
		p, err := r.products.GetByID(item.ProductID)
		if err != nil {
			return Order{}, nil, err
		}
		if p.Stock < item.Quantity {
			return Order{}, nil, &StockError{ProductName: item.ProductName, Available: p.Stock, Requested: item.Quantity}
		}
		stocks[p.ID] = p.Stock
	}

	var remaining *float64
	if s.BankAccountID != 0 {
		balance, ok := r.banks.Debit(s.BankAccountID, s.Amount)
		if !ok {
			return Order{}, nil, ErrInsufficientBalance
		}
		remaining = &balance
	}

	for _, item := range ord.Items {
		r.products.SetStock(item.ProductID, stocks[item.ProductID]-item.Quantity)
	}

	details := s.Details
	txn := s.TransactionID
	delivery := s.EstimatedDelivery
	ord.Status = StatusConfirmed
	ord.PaymentStatus = PaymentPaid
	ord.TransactionID = &txn
	ord.PaymentDetails = &details
	ord.EstimatedDelivery = &delivery
	ord.UpdatedAt = s.UpdatedAt

	if err := r.carts.ClearByUser(s.UserID); err != nil && err != cart.ErrCartNotFound {
		return Order{}, nil, err
	}

	return r.withProducts(*ord), remaining, nil
}

func (r *InMemoryRepository) find(orderID, userID int) *Order {
	for i := range r.orders {
		if r.orders[i].ID == orderID && r.orders[i].UserID == userID {
			return &r.orders[i]
		}
	}
	return nil
}

func (r *InMemoryRepository) withProducts(ord Order) Order {
	items := make([]OrderItem, len(ord.Items))
	copy(items, ord.Items)
	for i := range items {
		if p, err := r.products.GetByID(items[i].ProductID); err == nil {
			cp := p
			items[i].Product = &cp
		}
	}
	ord.Items = items
	return ord
}
