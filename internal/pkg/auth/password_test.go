package auth

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	manager := NewPasswordManager(testConfig())

	hash, err := manager.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("password stored in the clear")
	}

	if err := manager.VerifyPassword("correct horse battery", hash); err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if err := manager.VerifyPassword("wrong password", hash); err == nil {
		t.Fatal("expected verification to fail for the wrong password")
	}
}

func TestHashPasswordRejectsShortPasswords(t *testing.T) {
	manager := NewPasswordManager(testConfig())
	if _, err := manager.HashPassword("short"); err == nil {
		t.Fatal("expected short passwords to be rejected")
	}
}
