package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akshatdev/bitblog/internal/auth"
	"github.com/akshatdev/bitblog/internal/domain"
	"github.com/akshatdev/bitblog/internal/repository"
	"github.com/akshatdev/bitblog/internal/service"
	"github.com/akshatdev/bitblog/internal/transport/http/handlers"
)

type memUserRepo struct {
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u := *user
	r.users[user.Email] = &u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	copied.PasswordHash = ""
	return &copied, nil
}

func (r *memUserRepo) GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := r.users[user.Email]; !ok {
		return repository.ErrNotFound
	}
	u := *user
	r.users[user.Email] = &u
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return repository.ErrNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

const testSecret = "handler-test-secret"

func newAuthHandler(repo repository.UserRepository) *handlers.AuthHandler {
	svc := service.NewAuthService(repo, plainHasher{}, auth.NewTokenIssuer(testSecret))
	return handlers.NewAuthHandler(svc, auth.NewCookieManager(false))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doJSON(t *testing.T, fn func(http.ResponseWriter, *http.Request) error, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handlers.Wrap(discardLogger(), fn)(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestRegisterEndpoint(t *testing.T) {
	repo := newMemUserRepo()
	h := newAuthHandler(repo)

	t.Run("creates the account", func(t *testing.T) {
		rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
			`{"name":"Akshat","email":"a@example.com","password":"pw"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Registration successful"}`, rec.Body.String())
		assert.Empty(t, rec.Result().Cookies(), "registration must not start a session")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
			`{"name":"Akshat","email":"a@example.com","password":"pw"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
		assert.Len(t, repo.users, 1)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
			`{"name":"","email":"","password":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"statusCode":400`)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		rec := doJSON(t, h.Register, http.MethodPost, "/api/auth/register", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	repo := newMemUserRepo()
	h := newAuthHandler(repo)
	doJSON(t, h.Register, http.MethodPost, "/api/auth/register",
		`{"name":"Akshat","email":"a@example.com","password":"pw"}`)

	t.Run("issues a session cookie with matching claims", func(t *testing.T) {
		rec := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
			`{"email":"a@example.com","password":"pw"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.NotContains(t, rec.Body.String(), "password", "hash must be stripped from the response")

		cookie := sessionCookie(t, rec)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, int(auth.TokenTTL.Seconds()), cookie.MaxAge)

		claims, err := auth.NewTokenIssuer(testSecret).Parse(cookie.Value)
		require.NoError(t, err)
		assert.Equal(t, "Akshat", claims.Name)
		assert.Equal(t, "a@example.com", claims.Email)
		assert.Equal(t, repo.users["a@example.com"].ID.String(), claims.Subject)
	})

	t.Run("unknown email and wrong password look identical", func(t *testing.T) {
		unknown := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
			`{"email":"nobody@example.com","password":"pw"}`)
		wrongPw := doJSON(t, h.Login, http.MethodPost, "/api/auth/login",
			`{"email":"a@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusNotFound, unknown.Code)
		assert.Equal(t, unknown.Code, wrongPw.Code)
		assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
	})
}

func TestGoogleLoginEndpoint(t *testing.T) {
	repo := newMemUserRepo()
	h := newAuthHandler(repo)

	t.Run("provisions account and starts session", func(t *testing.T) {
		rec := doJSON(t, h.GoogleLogin, http.MethodPost, "/api/auth/google-login",
			`{"name":"Akshat","email":"g@example.com","avatar":"https://cdn.example.com/a.png"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)

		stored := repo.users["g@example.com"]
		require.NotNil(t, stored)
		assert.NotEmpty(t, stored.PasswordHash)

		claims, err := auth.NewTokenIssuer(testSecret).Parse(sessionCookie(t, rec).Value)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/a.png", claims.Avatar)
	})

	t.Run("second login reuses the account", func(t *testing.T) {
		before := repo.users["g@example.com"].ID

		rec := doJSON(t, h.GoogleLogin, http.MethodPost, "/api/auth/google-login",
			`{"name":"Akshat","email":"g@example.com","avatar":""}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, before, repo.users["g@example.com"].ID)
		assert.Len(t, repo.users, 1)
	})

	t.Run("missing identity fields rejected", func(t *testing.T) {
		rec := doJSON(t, h.GoogleLogin, http.MethodPost, "/api/auth/google-login",
			`{"name":"","email":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	h := newAuthHandler(newMemUserRepo())

	t.Run("clears the cookie", func(t *testing.T) {
		rec := doJSON(t, h.Logout, http.MethodPost, "/api/auth/logout", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"message":"Logout successful"}`, rec.Body.String())

		cookie := sessionCookie(t, rec)
		assert.Empty(t, cookie.Value)
		assert.Less(t, cookie.MaxAge, 0)
	})

	t.Run("succeeds without a prior session", func(t *testing.T) {
		// No cookie on the request at all; logout is idempotent.
		rec := doJSON(t, h.Logout, http.MethodPost, "/api/auth/logout", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
