package user

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestAuthRoutes(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	handler := NewHandler(NewService(NewInMemoryRepository(nil)))
	app := fiber.New()
	handler.RegisterPublicRoutes(app)

	// register
	body := `{"email":"selva@example.com","password":"secret123","firstName":"Selva","lastName":"Kumar","phone":"9876543210"}`
	req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, string(b))
	}
	b, _ := io.ReadAll(res.Body)
	if strings.Contains(string(b), "secret123") {
		t.Fatalf("response leaks password: %s", string(b))
	}

	// duplicate email
	req2 := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res2.StatusCode)
	}

	// login issues a token
	req3 := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"selva@example.com","password":"secret123"}`))
	req3.Header.Set("Content-Type", "application/json")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for login, got %d", res3.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	b3, _ := io.ReadAll(res3.Body)
	if err := json.Unmarshal(b3, &out); err != nil || out.Token == "" {
		t.Fatalf("expected token in response, got %s", string(b3))
	}

	// wrong password
	req4 := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(`{"email":"selva@example.com","password":"nope"}`))
	req4.Header.Set("Content-Type", "application/json")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", res4.StatusCode)
	}
}
