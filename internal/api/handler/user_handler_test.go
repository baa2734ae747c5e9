package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/plateful/recipe-api/internal/core/domain"
	"github.com/plateful/recipe-api/internal/core/ports"
)

type stubUserService struct {
	createFunc     func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	issueTokenFunc func(ctx context.Context, email, password string) (string, *domain.User, error)
	getFunc        func(ctx context.Context, userID uint) (*domain.User, error)
	updateFunc     func(ctx context.Context, userID uint, in ports.UpdateUserInput) (*domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFunc(ctx, in)
}

func (s *stubUserService) CreateSuperuser(context.Context, ports.CreateSuperuserInput) (*domain.User, error) {
	return nil, errors.New("not wired in tests")
}

func (s *stubUserService) IssueToken(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.issueTokenFunc(ctx, email, password)
}

func (s *stubUserService) Get(ctx context.Context, userID uint) (*domain.User, error) {
	return s.getFunc(ctx, userID)
}

func (s *stubUserService) Update(ctx context.Context, userID uint, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFunc(ctx, userID, in)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asHTTPError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he
}

func TestUserHandler_Create(t *testing.T) {
	var got ports.CreateUserInput
	svc := &stubUserService{
		createFunc: func(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: 1, Email: in.Email, Name: in.Name, PasswordHash: "hashed", IsActive: true}, nil
		},
	}
	h := NewUserHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/api/user/",
		`{"email":"test@example.com","password":"testpass123","name":"Test Name"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Email != "test@example.com" || got.Name != "Test Name" {
		t.Fatalf("unexpected service input: %+v", got)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["email"] != "test@example.com" {
		t.Fatalf("unexpected body: %v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatal("password must never appear in the response")
	}
}

func TestUserHandler_Create_ShortPassword(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		createFunc: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			t.Fatal("service must not be called for an invalid payload")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/api/user/",
		`{"email":"test@example.com","password":"pw","name":"Test Name"}`)

	he := asHTTPError(t, h.Create(c))
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}

func TestUserHandler_Create_MissingEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		createFunc: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			t.Fatal("service must not be called for an invalid payload")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/api/user/", `{"password":"testpass123","name":"Test"}`)

	he := asHTTPError(t, h.Create(c))
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}

func TestUserHandler_Create_DuplicateEmail(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		createFunc: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrEmailExists
		},
	})

	c, _ := newTestContext(http.MethodPost, "/api/user/",
		`{"email":"test@example.com","password":"testpass123","name":"Test"}`)

	if err := h.Create(c); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists to propagate, got %v", err)
	}
}

func TestUserHandler_Token(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		issueTokenFunc: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "test@example.com" || password != "testpass123" {
				t.Fatalf("unexpected credentials: %s / %s", email, password)
			}
			return "signed.jwt.token", &domain.User{ID: 1, Email: email}, nil
		},
	})

	c, rec := newTestContext(http.MethodPost, "/api/user/token",
		`{"email":"test@example.com","password":"testpass123"}`)

	if err := h.Token(c); err != nil {
		t.Fatalf("token: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
}

func TestUserHandler_Token_BadCredentials(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		issueTokenFunc: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newTestContext(http.MethodPost, "/api/user/token",
		`{"email":"test@example.com","password":"wrong"}`)

	if err := h.Token(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestUserHandler_Token_WrappedBadCredentials(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		issueTokenFunc: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, fmt.Errorf("issue token: %w", domain.ErrInvalidCredentials)
		},
	})

	c, _ := newTestContext(http.MethodPost, "/api/user/token",
		`{"email":"test@example.com","password":"wrong"}`)

	// Wrapped credential errors must still be recognised as such.
	if err := h.Token(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestUserHandler_Token_BlankPassword(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		issueTokenFunc: func(context.Context, string, string) (string, *domain.User, error) {
			t.Fatal("service must not be called for an invalid payload")
			return "", nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPost, "/api/user/token",
		`{"email":"test@example.com","password":""}`)

	he := asHTTPError(t, h.Token(c))
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}

func TestUserHandler_Me(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		getFunc: func(_ context.Context, userID uint) (*domain.User, error) {
			if userID != 7 {
				t.Fatalf("expected lookup for user 7, got %d", userID)
			}
			return &domain.User{ID: 7, Email: "me@example.com", Name: "Me"}, nil
		},
	})

	c, rec := newTestContext(http.MethodGet, "/api/user/me", "")
	c.Set("user_id", uint(7))

	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Email != "me@example.com" || resp.Name != "Me" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestUserHandler_Me_Unauthenticated(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(http.MethodGet, "/api/user/me", "")

	he := asHTTPError(t, h.Me(c))
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
}

func TestUserHandler_UpdateMe(t *testing.T) {
	var got ports.UpdateUserInput
	h := NewUserHandler(&stubUserService{
		updateFunc: func(_ context.Context, userID uint, in ports.UpdateUserInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: userID, Email: "me@example.com", Name: *in.Name}, nil
		},
	})

	c, rec := newTestContext(http.MethodPatch, "/api/user/me", `{"name":"New Name"}`)
	c.Set("user_id", uint(7))

	if err := h.UpdateMe(c); err != nil {
		t.Fatalf("update me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Name == nil || *got.Name != "New Name" {
		t.Fatalf("name not forwarded: %+v", got)
	}
	if got.Email != nil || got.Password != nil {
		t.Fatalf("absent fields must stay nil: %+v", got)
	}
}

func TestUserHandler_UpdateMe_ShortPassword(t *testing.T) {
	h := NewUserHandler(&stubUserService{
		updateFunc: func(context.Context, uint, ports.UpdateUserInput) (*domain.User, error) {
			t.Fatal("service must not be called for an invalid payload")
			return nil, nil
		},
	})

	c, _ := newTestContext(http.MethodPatch, "/api/user/me", `{"password":"pw"}`)
	c.Set("user_id", uint(7))

	he := asHTTPError(t, h.UpdateMe(c))
	if he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", he.Code)
	}
}
