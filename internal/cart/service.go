package cart

// ServiceInterface is what other packages (orders, handlers) depend on.
type ServiceInterface interface {
	GetOrCreate(userID int) (Cart, error)
	AddItem(userID, productID, quantity int) (CartItem, error)
	UpdateItemQuantity(userID, itemID, quantity int) (CartItem, error)
	RemoveItem(userID, itemID int) error
	Clear(userID int) error
}

// Service owns the cart aggregate. Every mutating operation finishes by
// recomputing the cart total from the live rows.
type Service struct {
	repo     Repository
	products ProductGetter
}

func NewService(repo Repository, products ProductGetter) *Service {
	return &Service{repo: repo, products: products}
}

// GetOrCreate returns the user's cart with its items and joined products,
// creating an empty cart on first access.
func (s *Service) GetOrCreate(userID int) (Cart, error) {
	c, err := s.repo.GetByUser(userID)
	if err == ErrCartNotFound {
		return s.repo.Create(userID)
	}
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

// AddItem appends a product to the cart or increments an existing line.
// The stock check covers only the increment, not the cumulative quantity;
// the authoritative re-check happens at order creation.
func (s *Service) AddItem(userID, productID, quantity int) (CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	p, err := s.products.GetByID(productID)
	if err != nil {
		return CartItem{}, err
	}
	if p.Stock < quantity {
		return CartItem{}, ErrInsufficientStock
	}

	c, err := s.GetOrCreate(userID)
	if err != nil {
		return CartItem{}, err
	}

	item, err := s.repo.UpsertItem(c.ID, productID, quantity, p.Price)
	if err != nil {
		return CartItem{}, err
	}
	if _, err := s.repo.RecalculateTotal(c.ID); err != nil {
		return CartItem{}, err
	}

	item.Product = p
	return item, nil
}

func (s *Service) UpdateItemQuantity(userID, itemID, quantity int) (CartItem, error) {
	if quantity < 1 {
		return CartItem{}, ErrInvalidQuantity
	}

	existing, err := s.repo.GetItem(userID, itemID)
	if err != nil {
		return CartItem{}, err
	}
	if existing.Product.Stock < quantity {
		return CartItem{}, ErrInsufficientStock
	}

	item, err := s.repo.UpdateItemQuantity(itemID, quantity)
	if err != nil {
		return CartItem{}, err
	}
	if _, err := s.repo.RecalculateTotal(existing.CartID); err != nil {
		return CartItem{}, err
	}

	item.Product = existing.Product
	return item, nil
}

func (s *Service) RemoveItem(userID, itemID int) error {
	existing, err := s.repo.GetItem(userID, itemID)
	if err != nil {
		return err
	}
	if err := s.repo.RemoveItem(itemID); err != nil {
		return err
	}
	_, err = s.repo.RecalculateTotal(existing.CartID)
	return err
}

func (s *Service) Clear(userID int) error {
	if _, err := s.repo.GetByUser(userID); err != nil {
		return err
	}
	return s.repo.ClearByUser(userID)
}
