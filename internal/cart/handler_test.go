package cart

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/selvakumar-dev/shopkart-backend/internal/product"
)

func makeAppWithCartHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterProtectedRoutes(app)
	return app
}

func TestCartRoutes_Basic(t *testing.T) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Smart Watch", Price: 3999, Stock: 5, Category: "electronics"},
	})
	repo := NewInMemoryRepository(products)
	handler := NewHandler(NewService(repo, products))
	app := makeAppWithCartHandler(handler)

	// unauthenticated access should be blocked
	req := httptest.NewRequest("GET", "/api/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authenticated GET creates an empty cart
	req2 := httptest.NewRequest("GET", "/api/cart", nil)
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for authenticated GET, got %d", res2.StatusCode)
	}

	// add a product
	req3 := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(`{"productId":1,"quantity":2}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for add, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"quantity":2`) {
		t.Fatalf("response missing quantity: %s", string(b3))
	}

	// cart shows the running total
	req4 := httptest.NewRequest("GET", "/api/cart", nil)
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"totalAmount":7998`) {
		t.Fatalf("expected total 7998, got %s", string(b4))
	}

	// adding beyond stock is rejected
	req5 := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(`{"productId":1,"quantity":6}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for over-stock add, got %d", res5.StatusCode)
	}

	// unknown product is a 404
	req6 := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(`{"productId":9}`))
	req6.Header.Set("Content-Type", "application/json")
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res6.StatusCode)
	}

	// clear the cart
	req7 := httptest.NewRequest("DELETE", "/api/cart/clear", nil)
	req7.Header.Set("X-User-ID", "42")
	res7, _ := app.Test(req7)
	if res7.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for clear, got %d", res7.StatusCode)
	}
	req8 := httptest.NewRequest("GET", "/api/cart", nil)
	req8.Header.Set("X-User-ID", "42")
	res8, _ := app.Test(req8)
	b8, _ := io.ReadAll(res8.Body)
	if !strings.Contains(string(b8), `"totalAmount":0`) {
		t.Fatalf("expected empty cart after clear, got %s", string(b8))
	}
}

func TestCartRoutes_UpdateAndRemove(t *testing.T) {
	products := product.NewInMemoryRepository([]product.Product{
		{ID: 1, Name: "Smart Watch", Price: 100, Stock: 10, Category: "electronics"},
	})
	repo := NewInMemoryRepository(products)
	handler := NewHandler(NewService(repo, products))
	app := makeAppWithCartHandler(handler)

	req := httptest.NewRequest("POST", "/api/cart/add", strings.NewReader(`{"productId":1,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("add failed: %d", res.StatusCode)
	}

	// the in-memory repo hands out item ids starting at 1
	req2 := httptest.NewRequest("PUT", "/api/cart/update/1", strings.NewReader(`{"quantity":5}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", "7")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for update, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"quantity":5`) {
		t.Fatalf("expected quantity 5, got %s", string(b2))
	}

	// zero quantity is rejected
	req3 := httptest.NewRequest("PUT", "/api/cart/update/1", strings.NewReader(`{"quantity":0}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "7")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", res3.StatusCode)
	}

	req4 := httptest.NewRequest("DELETE", "/api/cart/remove/1", nil)
	req4.Header.Set("X-User-ID", "7")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for remove, got %d", res4.StatusCode)
	}

	req5 := httptest.NewRequest("DELETE", "/api/cart/remove/1", nil)
	req5.Header.Set("X-User-ID", "7")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing item, got %d", res5.StatusCode)
	}
}
