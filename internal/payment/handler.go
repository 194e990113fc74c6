package payment

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/selvakumar-dev/shopkart-backend/internal/bank"
	"github.com/selvakumar-dev/shopkart-backend/internal/order"
	"github.com/selvakumar-dev/shopkart-backend/internal/user"
)

// Handler exposes the simulated payment gateway: method discovery, dry-run
// credential validation and settlement of pending orders.
type Handler struct {
	ledger bank.Ledger
	orders order.ServiceInterface
}

func NewHandler(ledger bank.Ledger, orders order.ServiceInterface) *Handler {
	return &Handler{ledger: ledger, orders: orders}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/payment/methods", h.getMethods)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/payment/validate-card", h.validateCard)
	app.Post("/api/payment/validate-upi", h.validateUPI)
	app.Post("/api/payment/process/:orderId", h.processPayment)
}

type cardRequest struct {
	AccountNumber string `json:"accountNumber"`
	PIN           string `json:"pin"`
}

type upiRequest struct {
	UPIID string `json:"upiId"`
	PIN   string `json:"pin"`
}

type processRequest struct {
	PaymentMethod  string               `json:"paymentMethod"`
	PaymentDetails order.PaymentRequest `json:"paymentDetails"`
}

func (h *Handler) getMethods(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"methods": []fiber.Map{
			{
				"id":                "card",
				"name":              "Debit/Credit Card",
				"description":       "Pay using your bank card",
				"icon":              "💳",
				"processingFee":     0,
				"estimatedDelivery": "3-4 days",
			},
			{
				"id":                "upi",
				"name":              "UPI Payment",
				"description":       "Pay using UPI (Google Pay, PhonePe, Paytm)",
				"icon":              "📱",
				"processingFee":     0,
				"estimatedDelivery": "3-4 days",
			},
			{
				"id":                "cod",
				"name":              "Cash on Delivery",
				"description":       "Pay when your order is delivered",
				"icon":              "💵",
				"processingFee":     order.CODSurcharge,
				"estimatedDelivery": "5-7 days",
			},
		},
	})
}

func (h *Handler) validateCard(c *fiber.Ctx) error {
	payload := new(cardRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.AccountNumber == "" || payload.PIN == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Account number and PIN are required"})
	}

	acct, err := h.ledger.ValidateCard(payload.AccountNumber, payload.PIN)
	if err != nil {
		switch err {
		case bank.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invalid account number"})
		case bank.ErrInvalidPIN:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid PIN"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message":       "Card validated successfully",
		"accountHolder": acct.AccountHolderName,
		"bankName":      acct.BankName,
		"balance":       acct.Balance,
		"maskedAccount": bank.MaskAccountNumber(acct.AccountNumber),
	})
}

func (h *Handler) validateUPI(c *fiber.Ctx) error {
	payload := new(upiRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.UPIID == "" || payload.PIN == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "UPI ID and PIN are required"})
	}

	acct, err := h.ledger.ValidateUPI(payload.UPIID, payload.PIN)
	if err != nil {
		switch err {
		case bank.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invalid UPI ID"})
		case bank.ErrInvalidPIN:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid UPI PIN"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message":       "UPI validated successfully",
		"accountHolder": acct.AccountHolderName,
		"bankName":      acct.BankName,
		"balance":       acct.Balance,
		"upiId":         acct.UPIID,
	})
}

func (h *Handler) processPayment(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(processRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, receipt, err := h.orders.ProcessPayment(userID, orderID, payload.PaymentMethod, payload.PaymentDetails)
	if err != nil {
		var stockErr *order.StockError
		switch {
		case errors.As(err, &stockErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": stockErr.Error()})
		case err == order.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found or already processed"})
		case err == order.ErrMissingPaymentDetails, err == order.ErrInsufficientBalance:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		case err == order.ErrPaymentFailed:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Payment failed"})
		case err == bank.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Invalid account"})
		case err == bank.ErrInvalidPIN:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid PIN"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message": successMessage(payload.PaymentMethod),
		"order":   ord,
		"payment": receipt,
	})
}

func successMessage(method string) string {
	switch method {
	case order.MethodCOD:
		return "COD order confirmed"
	case order.MethodUPI:
		return "UPI payment successful"
	default:
		return "Payment successful"
	}
}
