package user

import "testing"

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Register(User{Email: "selva@example.com", Password: "secret123", FirstName: "Selva"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.Password == "secret123" {
		t.Fatalf("password stored in plain text")
	}

	u, err := svc.Authenticate("selva@example.com", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.ID != created.ID {
		t.Fatalf("expected user %d, got %d", created.ID, u.ID)
	}

	if _, err := svc.Authenticate("selva@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "secret123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	if _, err := svc.Register(User{Email: "dup@example.com", Password: "x"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(User{Email: "dup@example.com", Password: "y"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	// email matching is case-insensitive
	if _, err := svc.Register(User{Email: "DUP@example.com", Password: "y"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists for different case, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 4, Email: "p@example.com", FirstName: "Priya"}})
	svc := NewService(repo)

	u, _ := svc.GetByID(4)
	u.Phone = "9876543210"
	updated, err := svc.Update(4, u)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Phone != "9876543210" || updated.FirstName != "Priya" {
		t.Fatalf("unexpected user %+v", updated)
	}

	if _, err := svc.Update(99, u); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
