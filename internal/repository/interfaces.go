package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/akshatdev/bitblog/internal/domain"
)

var (
	// ErrDuplicateEmail is returned by UserRepository.Create when the email is
	// already taken. Uniqueness is enforced by the store itself, not by a
	// prior existence check.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicateSlug is returned by CategoryRepository.Create and Update on
	// a slug collision.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrNotFound is returned by mutations targeting a missing row. Lookups
	// return (nil, nil) instead.
	ErrNotFound = errors.New("not found")
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail omits the password hash from the projection so it cannot
	// leak through serialization. Login uses GetByEmailWithPassword.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)

	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
