package service

import (
	"context"
	"errors"

	commoncrypto "github.com/asafonov/blog-backend/internal/common/crypto"
	"github.com/asafonov/blog-backend/internal/common/logger"
	userdomain "github.com/asafonov/blog-backend/internal/user/domain"
	userrepo "github.com/asafonov/blog-backend/internal/user/repository"
)

type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	tokens *TokenIssuer
	log    *logger.Logger
}

type AuthServiceDeps struct {
	Repo   userrepo.Repository
	Hasher commoncrypto.PasswordHasher
	Tokens *TokenIssuer
	Log    *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	return &AuthService{
		repo:   deps.Repo,
		hasher: deps.Hasher,
		tokens: deps.Tokens,
		log:    deps.Log,
	}
}

type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	PhoneNumber string
}

// Register creates a user with a bcrypt-hashed password. The email
// existence pre-check and the insert are not atomic; the unique index on
// users.email is the authoritative guard, and its rejection is translated
// into the same error the pre-check produces. The raw password is never
// stored or logged.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	exists, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_precheck_failed",
		}).Errorf("register failed: email pre-check error: %v", err)
		return userdomain.User{}, ErrUserLookupFailed.WithCause(err)
	}
	if exists {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_email_exists",
		}).Warn("register failed: email already in use")
		incrementRegistrationsRejected("email_in_use")
		return userdomain.User{}, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		incrementRegistrationsRejected("hash_failed")
		return userdomain.User{}, ErrPasswordHashFailed.WithCause(err)
	}

	user := userdomain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyInUse) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_conflict",
			}).Warn("register failed: unique index rejected email")
			incrementRegistrationsRejected("email_in_use")
			return userdomain.User{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return userdomain.User{}, ErrUserCreateFailed.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   created.Email,
		"user_id": string(created.ID),
		"action":  "register_success",
	}).Info("register success")

	incrementUsersRegistered()
	return created, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns a signed identity token whose
// subject is the user's id. Unknown email and wrong password yield the
// identical error so responses cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			incrementLoginsFailed()
			return "", ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return "", ErrUserLookupFailed.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		incrementLoginsFailed()
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return "", ErrTokenIssueFailed.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	incrementLogins()
	return token, nil
}
