package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/curricula-api/internal/service/auth"
)

// mockJWTService is a testify mock for auth.JWTService.
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if claims, ok := args.Get(0).(*auth.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if claims, ok := args.Get(0).(*auth.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	// The inner handler records whether it ran and what user ID it saw.
	runRequest := func(t *testing.T, jwtService auth.JWTService, authHeader string) (*httptest.ResponseRecorder, *uuid.UUID) {
		t.Helper()

		var seenUserID *uuid.UUID
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := GetUserID(r); ok {
				seenUserID = &id
			}
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/progress", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}

		NewAuthMiddleware(jwtService).Authenticate(inner).ServeHTTP(rec, req)
		return rec, seenUserID
	}

	t.Run("valid token passes the user ID through", func(t *testing.T) {
		t.Parallel()
		svc := new(mockJWTService)
		svc.On("ValidateToken", mock.Anything, "good-token").
			Return(&auth.Claims{UserID: userID}, nil)

		rec, seen := runRequest(t, svc, "Bearer good-token")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotNil(t, seen)
		assert.Equal(t, userID, *seen)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		svc := new(mockJWTService)

		rec, seen := runRequest(t, svc, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
		svc.AssertNotCalled(t, "ValidateToken", mock.Anything, mock.Anything)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()
		svc := new(mockJWTService)

		for _, header := range []string{"good-token", "Basic dXNlcjpwYXNz", "Bearer a b"} {
			rec, seen := runRequest(t, svc, header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
			assert.Nil(t, seen)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		svc := new(mockJWTService)
		svc.On("ValidateToken", mock.Anything, "stale-token").
			Return(nil, auth.ErrExpiredToken)

		rec, seen := runRequest(t, svc, "Bearer stale-token")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
		assert.Contains(t, rec.Body.String(), "Token expired")
	})

	t.Run("refresh token on a protected route is rejected", func(t *testing.T) {
		t.Parallel()
		svc := new(mockJWTService)
		svc.On("ValidateToken", mock.Anything, "refresh-token").
			Return(nil, auth.ErrWrongTokenType)

		rec, seen := runRequest(t, svc, "Bearer refresh-token")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("unexpected validation failure is a 500", func(t *testing.T) {
		t.Parallel()
		svc := new(mockJWTService)
		svc.On("ValidateToken", mock.Anything, "weird-token").
			Return(nil, errors.New("keystore unavailable"))

		rec, seen := runRequest(t, svc, "Bearer weird-token")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Nil(t, seen)
	})
}
