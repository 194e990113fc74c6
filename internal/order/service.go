package order

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/selvakumar-dev/shopkart-backend/internal/bank"
	"github.com/selvakumar-dev/shopkart-backend/internal/cart"
)

// CartReader is the slice of the cart service the orchestrator needs.
type CartReader interface {
	GetOrCreate(userID int) (cart.Cart, error)
}

type ServiceInterface interface {
	Create(userID int, shippingAddress, paymentMethod string) (Order, error)
	ProcessPayment(userID, orderID int, method string, req PaymentRequest) (Order, Receipt, error)
	ListByUser(userID int) ([]Order, error)
	GetByID(userID, orderID int) (Order, error)
}

// Service orchestrates the two-step checkout. Create (Step A) freezes the
// cart into a pending order; ProcessPayment (Step B) validates credentials
// and settles the order atomically through the repository.
type Service struct {
	repo   Repository
	carts  CartReader
	ledger bank.Ledger
	logger zerolog.Logger
}

func NewService(repo Repository, carts CartReader, ledger bank.Ledger, logger zerolog.Logger) *Service {
	return &Service{repo: repo, carts: carts, ledger: ledger, logger: logger}
}

// Create turns the user's cart into a pending order. Stock is re-checked
// against the live catalog but not reserved; the authoritative decrement
// happens at settlement.
func (s *Service) Create(userID int, shippingAddress, paymentMethod string) (Order, error) {
	if !validMethod(paymentMethod) {
		return Order{}, ErrInvalidPaymentMethod
	}

	c, err := s.carts.GetOrCreate(userID)
	if err != nil {
		return Order{}, err
	}
	if len(c.Items) == 0 {
		return Order{}, ErrEmptyCart
	}

	items := make([]OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		if line.Product.Stock < line.Quantity {
			return Order{}, &StockError{
				ProductName: line.Product.Name,
				Available:   line.Product.Stock,
				Requested:   line.Quantity,
			}
		}
		items = append(items, OrderItem{
			ProductID:   line.ProductID,
			Quantity:    line.Quantity,
			Price:       line.Price,
			ProductName: line.Product.Name,
		})
	}

	total := c.TotalAmount
	if paymentMethod == MethodCOD {
		total += CODSurcharge
	}

	now := time.Now().UTC().Format(time.RFC3339)
	ord, err := s.repo.Create(Order{
		UserID:          userID,
		OrderNumber:     newOrderNumber(),
		TotalAmount:     total,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, items)
	if err != nil {
		return Order{}, err
	}

	s.logger.Info().
		Int("order_id", ord.ID).
		Int("user_id", userID).
		Str("order_number", ord.OrderNumber).
		Str("payment_method", paymentMethod).
		Float64("total", total).
		Msg("order created")
	return ord, nil
}

// ProcessPayment settles a pending order. Credential failures return before
// any write, leaving the order pending so the user can retry; only an
// unsupported method marks the payment failed.
func (s *Service) ProcessPayment(userID, orderID int, method string, req PaymentRequest) (Order, Receipt, error) {
	ord, err := s.repo.GetPending(orderID, userID)
	if err != nil {
		return Order{}, Receipt{}, err
	}

	now := time.Now().UTC()
	txn := newTransactionID()
	details := PaymentDetails{
		Method:        method,
		TransactionID: txn,
		ProcessedAt:   now.Format(time.RFC3339),
	}
	var bankAccountID int

	switch method {
	case MethodCOD:
		// nothing to validate, collection happens at the door
	case MethodCard:
		if req.AccountNumber == "" || req.PIN == "" {
			return Order{}, Receipt{}, ErrMissingPaymentDetails
		}
		acct, err := s.ledger.ValidateCard(req.AccountNumber, req.PIN)
		if err != nil {
			return Order{}, Receipt{}, err
		}
		if acct.Balance < ord.TotalAmount {
			return Order{}, Receipt{}, ErrInsufficientBalance
		}
		details.DeductedFrom = acct.AccountHolderName
		bankAccountID = acct.ID
	case MethodUPI:
		if req.UPIID == "" || req.PIN == "" {
			return Order{}, Receipt{}, ErrMissingPaymentDetails
		}
		acct, err := s.ledger.ValidateUPI(req.UPIID, req.PIN)
		if err != nil {
			return Order{}, Receipt{}, err
		}
		if acct.Balance < ord.TotalAmount {
			return Order{}, Receipt{}, ErrInsufficientBalance
		}
		details.DeductedFrom = acct.AccountHolderName
		bankAccountID = acct.ID
	default:
		failed := PaymentDetails{
			Method:   method,
			FailedAt: now.Format(time.RFC3339),
			Reason:   "Payment processing failed",
		}
		if err := s.repo.MarkPaymentFailed(ord.ID, failed, now.Format(time.RFC3339)); err != nil {
			return Order{}, Receipt{}, err
		}
		s.logger.Warn().
			Int("order_id", ord.ID).
			Str("method", method).
			Msg("payment failed, unsupported method")
		return Order{}, Receipt{}, ErrPaymentFailed
	}

	delivery := now.Add(3 * 24 * time.Hour)
	if method == MethodCOD {
		delivery = now.Add(5 * 24 * time.Hour)
	}

	updated, remaining, err := s.repo.Settle(Settlement{
		OrderID:           ord.ID,
		UserID:            userID,
		TransactionID:     txn,
		Details:           details,
		EstimatedDelivery: delivery.Format(time.RFC3339),
		UpdatedAt:         now.Format(time.RFC3339),
		BankAccountID:     bankAccountID,
		Amount:            ord.TotalAmount,
	})
	if err != nil {
		return Order{}, Receipt{}, err
	}

	s.logger.Info().
		Int("order_id", updated.ID).
		Str("transaction_id", txn).
		Str("method", method).
		Float64("amount", updated.TotalAmount).
		Msg("payment settled")

	receipt := Receipt{
		TransactionID:    txn,
		Method:           method,
		Amount:           updated.TotalAmount,
		Currency:         Currency,
		Status:           "success",
		RemainingBalance: remaining,
	}
	return updated, receipt, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) GetByID(userID, orderID int) (Order, error) {
	return s.repo.GetByID(orderID, userID)
}
