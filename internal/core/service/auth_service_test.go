package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/restaurantes/restaurant-api/internal/core/domain"
	"github.com/restaurantes/restaurant-api/internal/core/ports"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]string(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := r.users[user.Username]; exists {
		return domain.ErrUserExists
	}
	r.users[user.Username] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func newAuthSvc(repo ports.UserRepository) (*AuthService, *TokenService) {
	tokens := NewTokenService("secret", "test", time.Hour)
	return NewAuthService(repo, tokens, zerolog.Nop()), tokens
}

func registration(id int64, username string, roles ...string) ports.RegisterInput {
	return ports.RegisterInput{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Password: "pass123",
		Roles:    roles,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	user, err := svc.Register(context.Background(), registration(1, "alice", domain.RoleUser))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}

	stored := repo.users["alice"]
	if stored == nil {
		t.Fatalf("user was not stored")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("plaintext password stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.ID != 1 || stored.Email != "alice@example.com" {
		t.Fatalf("unexpected stored user: %+v", stored)
	}
	if len(stored.Roles) != 1 || stored.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", stored.Roles)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	cases := map[string]func(*ports.RegisterInput){
		"missing id":       func(in *ports.RegisterInput) { in.ID = 0 },
		"missing username": func(in *ports.RegisterInput) { in.Username = "" },
		"missing email":    func(in *ports.RegisterInput) { in.Email = "" },
		"missing password": func(in *ports.RegisterInput) { in.Password = "" },
		"missing roles":    func(in *ports.RegisterInput) { in.Roles = nil },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newStubUserRepo()
			svc, _ := newAuthSvc(repo)

			in := registration(1, "bob", domain.RoleUser)
			mutate(&in)

			if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(repo.users) != 0 {
				t.Fatalf("nothing should be stored on validation failure")
			}
		})
	}
}

func TestAuthService_Register_DuplicateDoesNotOverwrite(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), registration(1, "bob", domain.RoleUser)); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	original := repo.users["bob"].PasswordHash

	second := registration(2, "bob", domain.RoleAdmin)
	second.Password = "other"
	_, err := svc.Register(context.Background(), second)
	if !errors.Is(err, domain.ErrUserExists) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	stored := repo.users["bob"]
	if stored.PasswordHash != original || stored.ID != 1 || stored.Roles[0] != domain.RoleUser {
		t.Fatalf("existing credential was modified: %+v", stored)
	}
}

func TestAuthService_Register_LookupError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("db down")
	svc, _ := newAuthSvc(repo)

	_, err := svc.Register(context.Background(), registration(1, "carl", domain.RoleUser))
	if err == nil || errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newAuthSvc(repo)

	if _, err := svc.Register(context.Background(), registration(3, "carol", domain.RoleAdmin, domain.RoleUser)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol", "pass123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	identity, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if identity.Username != "carol" {
		t.Fatalf("unexpected username claim: %s", identity.Username)
	}
	if len(identity.Roles) != 2 || identity.Roles[0] != domain.RoleAdmin || identity.Roles[1] != domain.RoleUser {
		t.Fatalf("token roles do not match stored roles: %v", identity.Roles)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	_, _ = svc.Register(context.Background(), registration(4, "dave", domain.RoleUser))
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newAuthSvc(repo)

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
