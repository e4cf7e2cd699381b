package user

import "testing"

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	service := NewService(repo)

	created, err := service.Register(User{Email: "a@example.com", Password: "secret", Name: "Alice"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.Role != RoleUser {
		t.Errorf("expected role to default to USER, got %s", created.Role)
	}
	if created.Password == "secret" {
		t.Error("password must be hashed before storage")
	}

	if _, err := service.Authenticate("a@example.com", "secret"); err != nil {
		t.Errorf("expected authentication with original password, got %v", err)
	}
	if _, err := service.Authenticate("a@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 1, Email: "a@example.com"}})
	service := NewService(repo)

	if _, err := service.Register(User{Email: "a@example.com", Password: "x", Name: "Dup"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegister_KeepsManagerRole(t *testing.T) {
	service := NewService(NewInMemoryRepository(nil))

	created, err := service.Register(User{Email: "m@example.com", Password: "secret", Name: "Mara", Role: RoleManager})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if created.Role != RoleManager {
		t.Errorf("expected MANAGER role preserved, got %s", created.Role)
	}
}
