package cart

import (
	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

// Cart is the per-user aggregate. TotalAmount is a denormalized cache that
// is always recomputed from the live item rows, never adjusted in place.
type Cart struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	TotalAmount float64    `json:"totalAmount"`
	Items       []CartItem `json:"cartItems"`
}

// CartItem holds a price snapshot taken when the product was first added;
// it is not re-synced when the catalog price changes later.
type CartItem struct {
	ID        int             `json:"id"`
	CartID    int             `json:"cartId"`
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     float64         `json:"price"`
	Product   product.Product `json:"product"`
}
