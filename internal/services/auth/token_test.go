package auth

import "testing"

func TestTokenStoreLifecycle(t *testing.T) {
	store := NewTokenStore()
	defer store.Close()

	token := store.Issue(42)
	if token == "" {
		t.Fatal("Issue() returned an empty token")
	}
	if other := store.Issue(42); other == token {
		t.Error("tokens must be unique per issue")
	}

	userID, ok := store.Resolve(token)
	if !ok || userID != 42 {
		t.Errorf("Resolve() = (%d, %v), want (42, true)", userID, ok)
	}

	store.Invalidate(token)
	if store.IsValid(token) {
		t.Error("token still valid after Invalidate()")
	}
	if _, ok := store.Resolve("never-issued"); ok {
		t.Error("unknown token resolved")
	}
}

func TestTokenStoreClose(t *testing.T) {
	store := NewTokenStore()
	token := store.Issue(1)
	store.Close()
	if store.IsValid(token) {
		t.Error("token survived Close()")
	}
}

func TestPasswordHasher(t *testing.T) {
	hasher := NewPasswordHasher(4)

	hash, err := hasher.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error: %v", err)
	}
	if hash == "secret" {
		t.Fatal("Hash() returned the plain password")
	}
	if !hasher.Matches("secret", hash) {
		t.Error("Matches() failed for the right password")
	}
	if hasher.Matches("wrong", hash) {
		t.Error("Matches() accepted a wrong password")
	}

	// Out-of-range costs fall back to the bcrypt default.
	if _, err := NewPasswordHasher(99).Hash("secret"); err != nil {
		t.Errorf("Hash() with clamped cost failed: %v", err)
	}
}
