package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akshatdev/bitblog/internal/apperror"
	"github.com/akshatdev/bitblog/internal/domain"
	"github.com/akshatdev/bitblog/internal/repository"
)

type CategoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Add(ctx context.Context, name, slug string) error {
	category := &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		CreatedAt: time.Now(),
	}

	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlug) {
			return apperror.Conflict("Category slug already in use")
		}
		return apperror.Internal("Internal Server Error", err)
	}
	return nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}
	if category == nil {
		return nil, apperror.NotFound("Category not found.")
	}
	return category, nil
}

// List returns categories sorted by name, except a category literally named
// "others", which always sorts last.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperror.Internal("Internal Server Error", err)
	}

	var others []domain.Category
	sorted := categories[:0]
	for _, c := range categories {
		if strings.EqualFold(c.Name, "others") {
			others = append(others, c)
			continue
		}
		sorted = append(sorted, c)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	return append(sorted, others...), nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name, slug string) (*domain.Category, error) {
	category := &domain.Category{ID: id, Name: name, Slug: slug}

	if err := s.categories.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("Category not found.")
		case errors.Is(err, repository.ErrDuplicateSlug):
			return nil, apperror.Conflict("Category slug already in use")
		default:
			return nil, apperror.Internal("Internal Server Error", err)
		}
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("Category not found.")
		}
		return apperror.Internal("Internal Server Error", err)
	}
	return nil
}
