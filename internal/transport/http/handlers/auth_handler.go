package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akshatdev/bitblog/internal/apperror"
	"github.com/akshatdev/bitblog/internal/auth"
	"github.com/akshatdev/bitblog/internal/service"
	"github.com/akshatdev/bitblog/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	cookies     *auth.CookieManager
}

func NewAuthHandler(authService *service.AuthService, cookies *auth.CookieManager) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) error {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return apperror.Validation("Invalid request body")
	}

	if errs := validator.ValidateRegister(input.Name, input.Email, input.Password); errs.HasErrors() {
		return apperror.Validation(errs.Message())
	}

	if err := h.authService.Register(r.Context(), input); err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Registration successful",
	})
	return nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return apperror.Validation("Invalid request body")
	}

	if errs := validator.ValidateLogin(input.Email, input.Password); errs.HasErrors() {
		return apperror.Validation(errs.Message())
	}

	user, token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		return err
	}

	h.cookies.Issue(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
		"message": "Login successful",
	})
	return nil
}

func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) error {
	var input service.GoogleLoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return apperror.Validation("Invalid request body")
	}

	if errs := validator.ValidateGoogleLogin(input.Name, input.Email); errs.HasErrors() {
		return apperror.Validation(errs.Message())
	}

	user, token, err := h.authService.GoogleLogin(r.Context(), input)
	if err != nil {
		return err
	}

	h.cookies.Issue(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
		"message": "Google login successful",
	})
	return nil
}

// Logout clears the session cookie. It succeeds whether or not the caller
// held a session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) error {
	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logout successful",
	})
	return nil
}
