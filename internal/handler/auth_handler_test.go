package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "tasktrack/internal/errors"
	"tasktrack/internal/model"
	"tasktrack/internal/session"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockRevoker is a mock implementation of session.RevocationStoreInterface.
type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, ttl)
	return args.Error(0)
}

func (m *MockRevoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func newFormContext(t *testing.T, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name             string
		setupMock        func(*MockAuthService)
		expectedLocation string
	}{
		{
			name: "success redirects to login",
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "new@example.com", "password123").Return(&model.User{
					ID: 1, Email: "new@example.com",
				}, nil)
			},
			expectedLocation: "/login",
		},
		{
			name: "duplicate email redirects back to the form",
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "new@example.com", "password123").Return(nil, apperrors.ErrEmailTaken)
			},
			expectedLocation: "/register",
		},
		{
			name: "invalid input redirects back to the form",
			setupMock: func(m *MockAuthService) {
				m.On("Register", mock.Anything, "new@example.com", "password123").Return(nil, apperrors.ErrInvalidInput)
			},
			expectedLocation: "/register",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := new(MockAuthService)
			tt.setupMock(mockAuth)

			h := NewAuthHandler(mockAuth, session.NewManager("test-secret"), new(MockRevoker))
			c, rec := newFormContext(t, "/register", url.Values{
				"email":    {"new@example.com"},
				"password": {"password123"},
			})

			assert.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.expectedLocation, rec.Header().Get(echo.HeaderLocation))
			// Every outcome leaves a flash for the next page.
			assert.NotNil(t, cookieByName(rec, "tasktrack_flash"))

			mockAuth.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets session cookie and redirects home", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		mockAuth.On("Authenticate", mock.Anything, "user@example.com", "password123").Return(&model.User{
			ID: 42, Email: "user@example.com",
		}, nil)

		sessions := session.NewManager("test-secret")
		h := NewAuthHandler(mockAuth, sessions, new(MockRevoker))
		c, rec := newFormContext(t, "/login", url.Values{
			"email":    {"user@example.com"},
			"password": {"password123"},
		})

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

		cookie := cookieByName(rec, session.CookieName)
		assert.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)

		claims, err := sessions.Validate(cookie.Value)
		assert.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)

		mockAuth.AssertExpectations(t)
	})

	t.Run("bad credentials redirect back to login", func(t *testing.T) {
		mockAuth := new(MockAuthService)
		mockAuth.On("Authenticate", mock.Anything, "user@example.com", "wrong").Return(nil, apperrors.ErrInvalidCredentials)

		h := NewAuthHandler(mockAuth, session.NewManager("test-secret"), new(MockRevoker))
		c, rec := newFormContext(t, "/login", url.Values{
			"email":    {"user@example.com"},
			"password": {"wrong"},
		})

		assert.NoError(t, h.Login(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		assert.Nil(t, cookieByName(rec, session.CookieName))
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("revokes the session and clears the cookie", func(t *testing.T) {
		sessions := session.NewManager("test-secret")
		sessionID, token, err := sessions.Issue(42, "user@example.com")
		assert.NoError(t, err)

		revoker := new(MockRevoker)
		revoker.On("Revoke", mock.Anything, sessionID, mock.Anything).Return(nil)

		h := NewAuthHandler(new(MockAuthService), sessions, revoker)
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		req.AddCookie(session.NewCookie(token))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

		cleared := cookieByName(rec, session.CookieName)
		assert.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)

		revoker.AssertExpectations(t)
	})

	t.Run("no session is a no-op", func(t *testing.T) {
		h := NewAuthHandler(new(MockAuthService), session.NewManager("test-secret"), new(MockRevoker))
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/logout", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})
}
