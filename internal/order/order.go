package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"

	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"

	MethodCard = "card"
	MethodUPI  = "upi"
	MethodCOD  = "cod"

	// CODSurcharge is added to the order total for cash-on-delivery.
	CODSurcharge = 40.0

	Currency = "INR"
)

var (
	ErrInvalidPaymentMethod  = errors.New("invalid payment method, must be card, upi, or cod")
	ErrMissingPaymentDetails = errors.New("payment details are incomplete")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrNotFound              = errors.New("order not found or already processed")
	ErrPaymentFailed         = errors.New("payment failed")
)

// StockError reports which product could not cover the requested quantity.
type StockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Available: %d, Requested: %d",
		e.ProductName, e.Available, e.Requested)
}

// Order is immutable after creation except for status, paymentStatus and the
// payment fields, which only the orchestrator moves.
type Order struct {
	ID                int             `json:"id"`
	UserID            int             `json:"userId"`
	OrderNumber       string          `json:"orderNumber"`
	TotalAmount       float64         `json:"totalAmount"`
	ShippingAddress   string          `json:"shippingAddress"`
	PaymentMethod     string          `json:"paymentMethod"`
	Status            string          `json:"status"`
	PaymentStatus     string          `json:"paymentStatus"`
	TransactionID     *string         `json:"transactionId,omitempty"`
	PaymentDetails    *PaymentDetails `json:"paymentDetails,omitempty"`
	EstimatedDelivery *string         `json:"estimatedDelivery,omitempty"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
	Items             []OrderItem     `json:"orderItems"`
}

// OrderItem snapshots price and product name at order-creation time so the
// record survives later catalog edits.
type OrderItem struct {
	ID          int              `json:"id"`
	OrderID     int              `json:"orderId"`
	ProductID   int              `json:"productId"`
	Quantity    int              `json:"quantity"`
	Price       float64          `json:"price"`
	ProductName string           `json:"productName"`
	Product     *product.Product `json:"product,omitempty"`
}

// PaymentDetails is the structured jsonb record stored on the order.
type PaymentDetails struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId,omitempty"`
	ProcessedAt   string `json:"processedAt,omitempty"`
	DeductedFrom  string `json:"deductedFrom,omitempty"`
	FailedAt      string `json:"failedAt,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// PaymentRequest carries the method-specific credentials for processing.
type PaymentRequest struct {
	AccountNumber string `json:"accountNumber"`
	UPIID         string `json:"upiId"`
	PIN           string `json:"pin"`
}

// Receipt is returned to the caller after a successful settlement.
type Receipt struct {
	TransactionID    string   `json:"transactionId"`
	Method           string   `json:"method"`
	Amount           float64  `json:"amount"`
	Currency         string   `json:"currency"`
	Status           string   `json:"status"`
	RemainingBalance *float64 `json:"remainingBalance,omitempty"`
}

// Settlement is the single commit point of Step B: the debit, the order
// update, the cart clear and the stock decrements succeed or fail together.
type Settlement struct {
	OrderID           int
	UserID            int
	TransactionID     string
	Details           PaymentDetails
	EstimatedDelivery string
	UpdatedAt         string
	BankAccountID     int // zero means no debit (cod)
	Amount            float64
}

func validMethod(method string) bool {
	return method == MethodCard || method == MethodUPI || method == MethodCOD
}

// newOrderNumber builds a human-readable, probabilistically unique order
// number; the unique index on order_number is the backstop.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), randomToken(5))
}

func newTransactionID() string {
	return fmt.Sprintf("TXN-%d-%s", time.Now().UnixMilli(), randomToken(8))
}

func randomToken(n int) string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return token[:n]
}
