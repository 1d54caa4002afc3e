package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/akshatdev/bitblog/internal/apperror"
	"github.com/akshatdev/bitblog/internal/auth"
	"github.com/akshatdev/bitblog/internal/domain"
	"github.com/akshatdev/bitblog/internal/repository"
	"github.com/akshatdev/bitblog/pkg/retry"
)

// lookupTimeout bounds every store query issued by the auth flows.
const lookupTimeout = 10 * time.Second

type AuthService struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens *auth.TokenIssuer

	// Federated login wraps its find-or-create in a bounded retry to ride out
	// transient store failures.
	retryAttempts uint64
	retryDelay    time.Duration
}

func NewAuthService(users repository.UserRepository, hasher auth.PasswordHasher, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		users:         users,
		hasher:        hasher,
		tokens:        tokens,
		retryAttempts: 3,
		retryDelay:    2 * time.Second,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// Register creates a new account. It does not log the user in; no token or
// cookie is produced.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	existing, err := s.users.GetByEmail(lookupCtx, input.Email)
	if err != nil {
		return apperror.Internal("Database query timed out", err)
	}
	if existing != nil {
		return apperror.Conflict("User already registered")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return apperror.Internal("Internal Server Error", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// The store enforces email uniqueness; the existence check above is
		// only a courtesy.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return apperror.Conflict("User already registered")
		}
		return apperror.Internal("Internal Server Error", err)
	}

	return nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password return the same error so callers cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	user, err := s.users.GetByEmailWithPassword(lookupCtx, input.Email)
	if err != nil {
		return nil, "", apperror.Internal("Database query timed out", err)
	}
	if user == nil {
		return nil, "", apperror.InvalidCredentials()
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, "", apperror.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", apperror.Internal("Internal Server Error", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// GoogleLogin trusts the upstream-verified identity and finds or creates the
// matching account, then issues a session token identically to Login.
func (s *AuthService) GoogleLogin(ctx context.Context, input GoogleLoginInput) (*domain.User, string, error) {
	user, err := s.findOrCreate(ctx, input)
	if err != nil {
		return nil, "", apperror.Internal("Authentication failed. Please try again.", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", apperror.Internal("Internal Server Error", err)
	}

	user.PasswordHash = ""
	return user, token, nil
}

// findOrCreate retries the whole lookup-then-create sequence on store-level
// failures. A duplicate-email rejection is not a store failure: it means a
// concurrent first login won the insert, so the winning row is read back.
func (s *AuthService) findOrCreate(ctx context.Context, input GoogleLoginInput) (*domain.User, error) {
	var user *domain.User

	err := retry.Do(ctx, s.retryAttempts, s.retryDelay, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
		defer cancel()

		found, err := s.users.GetByEmail(attemptCtx, input.Email)
		if err != nil {
			return err
		}
		if found != nil {
			user = found
			return nil
		}

		// First sight of this identity: provision an account with a random
		// password, hashed like any locally registered one.
		password, err := randomPassword()
		if err != nil {
			return err
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return err
		}

		created := &domain.User{
			ID:           uuid.New(),
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hash,
			CreatedAt:    time.Now(),
		}
		if input.Avatar != "" {
			created.Avatar = &input.Avatar
		}

		if err := s.users.Create(attemptCtx, created); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				winner, readErr := s.users.GetByEmail(attemptCtx, input.Email)
				if readErr != nil {
					return readErr
				}
				if winner == nil {
					return err
				}
				user = winner
				return nil
			}
			return err
		}

		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func randomPassword() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
