package wishlist

import (
	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

// Entry is a (user, product) pair; duplicates are rejected by a unique
// index. The wishlist lifecycle is independent of cart and orders.
type Entry struct {
	ID        int             `json:"id"`
	UserID    int             `json:"userId"`
	ProductID int             `json:"productId"`
	CreatedAt string          `json:"createdAt,omitempty"`
	Product   product.Product `json:"product"`
}
