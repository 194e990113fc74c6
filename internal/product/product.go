package product

// Product is a catalog entry. Price carries two decimal places; stock is
// only ever decremented through the payment settlement path.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// Filter narrows and orders a catalog listing.
type Filter struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	SortBy   string
	Page     int
	Limit    int
}

// ListResult is a page of products plus pagination metadata.
type ListResult struct {
	Products      []Product `json:"products"`
	TotalProducts int       `json:"totalProducts"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
}
