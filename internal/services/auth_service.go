package services

import (
	"context"
	"strings"

	"backend/internal/auth"
	"backend/internal/domain"
	"backend/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials against the users collection and issues
// bearer tokens. The UI-side auth flow is out of scope; this is only the
// backend surface it calls.
type AuthService struct {
	Store     store.Store
	JWTSecret []byte
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string        `json:"token"`
	User  auth.Identity `json:"user"`
}

func (s AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginResult{}, domain.ValidationError{Field: "email", Msg: "email dan password wajib"}
	}

	rows, err := s.Store.Select(ctx, store.ColUsers, store.Eq("email", email))
	if err != nil {
		return LoginResult{}, domain.InternalError{Err: err}
	}
	if len(rows) == 0 {
		return LoginResult{}, domain.NotFoundError{Resource: "user"}
	}
	row := rows[0]

	hash, _ := row["password_hash"].(string)
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)) != nil {
		return LoginResult{}, domain.NotFoundError{Resource: "user"}
	}

	identity := auth.Identity{UserID: store.IDOf(row)}
	if v, ok := row["name"].(string); ok {
		identity.Name = v
	}
	if v, ok := row["phone"].(string); ok {
		identity.Phone = v
	}

	token, err := auth.IssueToken(s.JWTSecret, identity)
	if err != nil {
		return LoginResult{}, domain.InternalError{Err: err}
	}
	return LoginResult{Token: token, User: identity}, nil
}
