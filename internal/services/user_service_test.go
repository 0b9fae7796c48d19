package services

import (
	"context"
	"testing"
)

func TestRegister(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	if !f.users.Register(ctx, "salim", "secret") {
		t.Fatal("Register() failed for valid credentials")
	}
	if f.users.Register(ctx, "salim", "other") {
		t.Error("Register() must reject a taken username")
	}
	if f.users.Register(ctx, "  ", "secret") {
		t.Error("Register() must reject a blank username")
	}
	if f.users.Register(ctx, "other", " ") {
		t.Error("Register() must reject a blank password")
	}

	user := f.users.FindByUsername(ctx, "salim")
	if user == nil {
		t.Fatal("registered user not found")
	}
	if user.Password == "secret" {
		t.Error("password stored in plain text")
	}
}

func TestLoginSession(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	if !f.users.Register(ctx, "salim", "secret") {
		t.Fatal("Register() failed")
	}

	if f.users.Login(ctx, "salim", "wrong") != "" {
		t.Error("Login() must fail on a wrong password")
	}
	if f.users.Login(ctx, "nobody", "secret") != "" {
		t.Error("Login() must fail for an unknown user")
	}

	token := f.users.Login(ctx, "salim", "secret")
	if token == "" {
		t.Fatal("Login() failed for valid credentials")
	}
	if !f.users.IsTokenValid(token) {
		t.Error("fresh token reported invalid")
	}

	user := f.users.GetUserByToken(ctx, token)
	if user == nil || user.Username != "salim" {
		t.Errorf("GetUserByToken() = %+v, want salim", user)
	}

	f.users.Logout(token)
	if f.users.IsTokenValid(token) {
		t.Error("token still valid after logout")
	}
	if f.users.GetUserByToken(ctx, token) != nil {
		t.Error("user resolved from an invalidated token")
	}
}
