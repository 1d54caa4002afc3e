package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/akshatdev/bitblog/internal/apperror"
	"github.com/akshatdev/bitblog/internal/service"
	"github.com/akshatdev/bitblog/pkg/validator"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *CategoryHandler) Add(w http.ResponseWriter, r *http.Request) error {
	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return apperror.Validation("Invalid request body")
	}

	if errs := validator.ValidateCategory(input.Name, input.Slug); errs.HasErrors() {
		return apperror.Validation("Name and Slug are required.")
	}

	if err := h.categoryService.Add(r.Context(), input.Name, input.Slug); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Category added successfully.",
	})
	return nil
}

func (h *CategoryHandler) Show(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{"category": category})
	return nil
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"category": categories,
	})
	return nil
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return apperror.Validation("Invalid request body")
	}

	category, err := h.categoryService.Update(r.Context(), id, input.Name, input.Slug)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Category updated successfully.",
		"category": category,
	})
	return nil
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	if err := h.categoryService.Delete(r.Context(), id); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Category deleted successfully.",
	})
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid category id")
	}
	return id, nil
}
