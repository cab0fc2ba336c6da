package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asafonov/blog-backend/internal/auth/service"
	"github.com/asafonov/blog-backend/internal/common/clock"
	commonerrors "github.com/asafonov/blog-backend/internal/common/errors"
	"github.com/asafonov/blog-backend/internal/common/logger"
	userdomain "github.com/asafonov/blog-backend/internal/user/domain"
	userrepo "github.com/asafonov/blog-backend/internal/user/repository"
)

const testSecret = "test-secret-key-must-be-at-least-32-bytes-long"

func newAuthService(t *testing.T, repo *mockUserRepo, hasher *mockHasher) *service.AuthService {
	t.Helper()

	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	tokens := service.NewTokenIssuer(testSecret, time.Hour, mockClock)

	return service.NewAuthService(service.AuthServiceDeps{
		Repo:   repo,
		Hasher: hasher,
		Tokens: tokens,
		Log:    log,
	})
}

func TestAuthService_Register_Success(t *testing.T) {
	var stored userdomain.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
			stored = user
			user.ID = "00000000-0000-0000-0000-000000000001"
			return user, nil
		},
	}
	svc := newAuthService(t, repo, &mockHasher{})

	created, err := svc.Register(context.Background(), service.RegisterInput{
		Username:    "alice",
		Email:       "a@x.com",
		Password:    "pw",
		PhoneNumber: "555",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID == "" {
		t.Error("expected storage-assigned id to be set")
	}
	if created.Email != "a@x.com" {
		t.Errorf("expected email a@x.com, got %s", created.Email)
	}
	if stored.PasswordHash != "hashed:pw" {
		t.Errorf("expected hashed password to be stored, got %q", stored.PasswordHash)
	}
}

func TestAuthService_Register_NeverStoresPlaintext(t *testing.T) {
	var stored userdomain.User
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
			stored = user
			user.ID = "00000000-0000-0000-0000-000000000001"
			return user, nil
		},
	}
	svc := newAuthService(t, repo, &mockHasher{})

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username:    "alice",
		Email:       "a@x.com",
		Password:    "super-secret-password",
		PhoneNumber: "555",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if stored.PasswordHash == "super-secret-password" {
		t.Error("raw password must never reach storage")
	}
}

func TestAuthService_Register_EmailExistsPreCheck(t *testing.T) {
	repo := &mockUserRepo{
		existsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
		createFunc: func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
			t.Fatal("create must not be called when the pre-check rejects")
			return userdomain.User{}, nil
		},
	}
	svc := newAuthService(t, repo, &mockHasher{})

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw",
	})

	assertDomainError(t, err, "EMAIL_ALREADY_IN_USE", "email already in use")
}

func TestAuthService_Register_UniqueIndexBackstop(t *testing.T) {
	// The pre-check passes but the insert loses the race; the unique-index
	// rejection must surface as the same "email already in use" error.
	repo := &mockUserRepo{
		existsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		createFunc: func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
			return userdomain.User{}, userrepo.ErrEmailAlreadyInUse
		},
	}
	svc := newAuthService(t, repo, &mockHasher{})

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "bob",
		Email:    "a@x.com",
		Password: "pw",
	})

	assertDomainError(t, err, "EMAIL_ALREADY_IN_USE", "email already in use")
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	hasher := &mockHasher{
		hashFunc: func(password string) (string, error) {
			return "", errors.New("bcrypt exploded")
		},
	}
	svc := newAuthService(t, &mockUserRepo{}, hasher)

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw",
	})

	if err == nil {
		t.Fatal("expected error")
	}
	var dErr commonerrors.DomainError
	if !errors.As(err, &dErr) || dErr.HTTPStatus() != 400 {
		t.Errorf("expected a 400 domain error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{
				ID:           "00000000-0000-0000-0000-000000000001",
				Email:        email,
				PasswordHash: "hashed:pw",
			}, nil
		},
	}
	svc := newAuthService(t, repo, &mockHasher{})

	token, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "a@x.com",
		Password: "pw",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	unknownRepo := &mockUserRepo{} // FindByEmail defaults to not found
	wrongPwRepo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{
				ID:           "00000000-0000-0000-0000-000000000001",
				Email:        email,
				PasswordHash: "hashed:other",
			}, nil
		},
	}

	_, errUnknown := newAuthService(t, unknownRepo, &mockHasher{}).Login(context.Background(), service.LoginInput{
		Email:    "missing@x.com",
		Password: "pw",
	})
	_, errWrongPw := newAuthService(t, wrongPwRepo, &mockHasher{}).Login(context.Background(), service.LoginInput{
		Email:    "a@x.com",
		Password: "pw",
	})

	if errUnknown == nil || errWrongPw == nil {
		t.Fatal("expected both logins to fail")
	}

	var dUnknown, dWrongPw commonerrors.DomainError
	if !errors.As(errUnknown, &dUnknown) || !errors.As(errWrongPw, &dWrongPw) {
		t.Fatalf("expected domain errors, got %v / %v", errUnknown, errWrongPw)
	}
	if dUnknown.Message() != dWrongPw.Message() {
		t.Errorf("messages differ: %q vs %q", dUnknown.Message(), dWrongPw.Message())
	}
	if dUnknown.HTTPStatus() != 401 || dWrongPw.HTTPStatus() != 401 {
		t.Errorf("expected 401 for both, got %d / %d", dUnknown.HTTPStatus(), dWrongPw.HTTPStatus())
	}
}

func TestAuthService_Login_TokenSubjectIsUserID(t *testing.T) {
	const userID = "00000000-0000-0000-0000-000000000042"
	repo := &mockUserRepo{
		findByEmailFunc: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{
				ID:           userID,
				Email:        email,
				PasswordHash: "hashed:pw",
			}, nil
		},
	}

	log, err := logger.New("", "test", "info")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	tokens := service.NewTokenIssuer(testSecret, time.Hour, mockClock)
	svc := service.NewAuthService(service.AuthServiceDeps{
		Repo:   repo,
		Hasher: &mockHasher{},
		Tokens: tokens,
		Log:    log,
	})

	token, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "a@x.com",
		Password: "pw",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	claims, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected subject %s, got %s", userID, claims.UserID)
	}
}

func assertDomainError(t *testing.T, err error, code, message string) {
	t.Helper()

	if err == nil {
		t.Fatal("expected error")
	}
	var dErr commonerrors.DomainError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	if dErr.Code() != code {
		t.Errorf("expected code %s, got %s", code, dErr.Code())
	}
	if dErr.Message() != message {
		t.Errorf("expected message %q, got %q", message, dErr.Message())
	}
}
