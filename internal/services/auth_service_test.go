package services

import (
	"context"
	"testing"

	"backend/internal/auth"
	"backend/internal/domain"
)

func TestLoginIssuesToken(t *testing.T) {
	ctx := context.Background()
	secret := []byte("test-secret")
	svc := AuthService{Store: seededStore(t), JWTSecret: secret}

	out, err := svc.Login(ctx, LoginInput{Email: "demo@travel.app", Password: "password"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if out.Token == "" || out.User.UserID != "user-demo" {
		t.Fatalf("result = %+v", out)
	}

	id, err := auth.ParseBearer(secret, "Bearer "+out.Token)
	if err != nil {
		t.Fatalf("issued token does not parse back: %v", err)
	}
	if id.UserID != "user-demo" || id.Phone != "9876500000" {
		t.Fatalf("identity = %+v", id)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := AuthService{Store: seededStore(t), JWTSecret: []byte("test-secret")}

	_, err := svc.Login(ctx, LoginInput{Email: "demo@travel.app", Password: "wrong"})
	if !domain.IsNotFound(err) {
		t.Fatalf("wrong password error = %v", err)
	}

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@travel.app", Password: "password"})
	if !domain.IsNotFound(err) {
		t.Fatalf("unknown user error = %v", err)
	}

	_, err = svc.Login(ctx, LoginInput{Email: "", Password: ""})
	if !domain.IsValidation(err) {
		t.Fatalf("empty credentials error = %v", err)
	}
}
