package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/pkg/apperrors"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", TokenExp: exp, TokenIssuer: "capstone.test"})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService(0)

	token, err := svc.GenerateToken(Subject{ID: "s1", Name: "Jane", Email: "jane@x.edu", Role: models.RoleStudent, RegNo: "21BCE1"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "s1", claims.ID)
	assert.Equal(t, "Jane", claims.Name)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "21BCE1", claims.RegNo)
	assert.Nil(t, claims.ExpiresAt, "zero expiration must not set exp")
}

func TestStaffTokenHasNoRegNo(t *testing.T) {
	svc := newTestService(time.Hour)

	token, err := svc.GenerateToken(Subject{ID: "g1", Name: "Guide", Email: "g@x.edu", Role: models.RoleStaff})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.RegNo)
	require.NotNil(t, claims.ExpiresAt)
}

func TestValidateTokenErrors(t *testing.T) {
	svc := newTestService(time.Hour)
	good, err := svc.GenerateToken(Subject{ID: "a1", Role: models.RoleAdmin})
	require.NoError(t, err)

	expiredSvc := newTestService(time.Minute)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.GenerateToken(Subject{ID: "a1", Role: models.RoleAdmin})
	require.NoError(t, err)

	otherSecret, err := NewJWTService(JWTConfig{SecretKey: "other"}).GenerateToken(Subject{ID: "a1", Role: models.RoleAdmin})
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{ID: "a1", Role: models.RoleAdmin}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	badRole, err := svc.GenerateToken(Subject{ID: "a1", Role: "root"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"valid", good, nil},
		{"empty", "", apperrors.ErrTokenInvalid},
		{"malformed", "not-a-token", apperrors.ErrInvalidFormat},
		{"expired", expired, apperrors.ErrTokenExpired},
		{"wrong secret", otherSecret, apperrors.ErrTokenInvalid},
		{"wrong algorithm", hs512, apperrors.ErrTokenInvalid},
		{"unknown role", badRole, apperrors.ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", tok)

	for _, h := range []string{"", "Bearer", "Basic abc", "abc.def.ghi", "Bearer a b"} {
		_, err := ExtractBearerToken(h)
		assert.ErrorIs(t, err, apperrors.ErrInvalidFormat, h)
	}
}
