package product

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func newCatalogApp() *fiber.App {
	repo := NewInMemoryRepository([]Product{
		{ID: 1, Name: "Wireless Headphones", Description: "over-ear", Price: 2499, Stock: 25, Category: "electronics", CreatedAt: "2026-01-01T00:00:00Z"},
		{ID: 2, Name: "Cotton T-Shirt", Description: "soft", Price: 499, Stock: 60, Category: "clothing", CreatedAt: "2026-01-02T00:00:00Z"},
		{ID: 3, Name: "Smart Watch", Description: "amoled", Price: 3999, Stock: 18, Category: "electronics", CreatedAt: "2026-01-03T00:00:00Z"},
	})
	handler := NewHandler(NewService(repo))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)
	return app
}

func TestGetProducts_FilterAndSort(t *testing.T) {
	app := newCatalogApp()

	req := httptest.NewRequest("GET", "/api/products?category=electronics&sortBy=price-low", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, `"totalProducts":2`) {
		t.Fatalf("expected 2 electronics, got %s", body)
	}
	if strings.Index(body, "Wireless Headphones") > strings.Index(body, "Smart Watch") {
		t.Fatalf("expected price-low ordering, got %s", body)
	}
}

func TestGetProducts_Search(t *testing.T) {
	app := newCatalogApp()

	req := httptest.NewRequest("GET", "/api/products?search=shirt", nil)
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Cotton T-Shirt") || strings.Contains(string(b), "Smart Watch") {
		t.Fatalf("unexpected search result %s", string(b))
	}
}

func TestGetProducts_Pagination(t *testing.T) {
	app := newCatalogApp()

	req := httptest.NewRequest("GET", "/api/products?page=2&limit=2", nil)
	res, _ := app.Test(req)
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, `"totalPages":2`) || !strings.Contains(body, `"currentPage":2`) {
		t.Fatalf("unexpected pagination metadata %s", body)
	}
}

func TestGetProduct_ByID(t *testing.T) {
	app := newCatalogApp()

	req := httptest.NewRequest("GET", "/api/products/2", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "Cotton T-Shirt") {
		t.Fatalf("unexpected product %s", string(b))
	}

	req2 := httptest.NewRequest("GET", "/api/products/99", nil)
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", res2.StatusCode)
	}
}

func TestGetCategories_RouteBeforeParam(t *testing.T) {
	app := newCatalogApp()

	// must hit the meta route, not /api/products/:id
	req := httptest.NewRequest("GET", "/api/products/meta/categories", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "clothing") || !strings.Contains(string(b), "electronics") {
		t.Fatalf("unexpected categories %s", string(b))
	}
}
