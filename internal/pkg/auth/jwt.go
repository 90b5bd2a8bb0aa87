package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/capstone/internal/app/models"
	"github.com/yigit/capstone/internal/pkg/apperrors"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey string
	// TokenExp is the session lifetime. Zero issues tokens without an exp claim.
	// TODO: default to a finite lifetime once the web client handles re-login.
	TokenExp    time.Duration
	TokenIssuer string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
		now:    time.Now,
	}
}

// Subject is the account a token is issued for
type Subject struct {
	ID    string
	Name  string
	Email string
	Role  models.RoleType
	RegNo string // students only
}

// Claims defines JWT token content
type Claims struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.RoleType `json:"role"`
	RegNo string          `json:"regNo,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the subject
func (s *JWTService) GenerateToken(sub Subject) (string, error) {
	now := s.now()
	claims := &Claims{
		ID:    sub.ID,
		Name:  sub.Name,
		Email: sub.Email,
		Role:  sub.Role,
		RegNo: sub.RegNo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   s.config.TokenIssuer,
			Subject:  sub.ID,
			ID:       uuid.New().String(),
		},
	}
	if s.config.TokenExp > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.config.TokenExp))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to create access token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token signed with HS256
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, apperrors.ErrInvalidFormat
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.ID == "" {
		return nil, apperrors.ErrTokenInvalid
	}
	if _, ok := models.ParseRole(string(claims.Role)); !ok {
		return nil, apperrors.ErrTokenInvalid
	}
	return claims, nil
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.ErrInvalidFormat
	}
	return parts[1], nil
}
