package jwt

import (
	"Lost-Found-Registry/domain"
	"Lost-Found-Registry/internal/utils"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	defaultIssuer   = "LOST-FOUND-REGISTRY"
	defaultLifetime = 120 * time.Minute
)

type (
	JWTService interface {
		GenerateTokenAdmin(adminID string, role string) (string, error)
		ValidateTokenAdmin(token string) (*jwt.Token, error)
		GetAdminIDByToken(token string) (string, string, error)
	}

	jwtAdminClaim struct {
		AdminID string `json:"admin_id"`
		Role    string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		lifetime  time.Duration
	}
)

func NewJWTService() (JWTService, error) {
	return NewJWTServiceWithSecret(utils.GetConfig("JWT_SECRET"), defaultLifetime)
}

// NewJWTServiceWithSecret signs with the given key. An empty key would let
// anyone mint admin sessions, so it is refused.
func NewJWTServiceWithSecret(secret string, lifetime time.Duration) (JWTService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, domain.ErrJWTSecretMissing
	}
	return &jwtService{
		secretKey: secret,
		issuer:    defaultIssuer,
		lifetime:  lifetime,
	}, nil
}

func (j *jwtService) GenerateTokenAdmin(adminID string, role string) (string, error) {
	now := time.Now()
	claims := jwtAdminClaim{
		adminID,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.lifetime)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenAdmin(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtAdminClaim{}, j.parseToken)
}

func (j *jwtService) GetAdminIDByToken(token string) (string, string, error) {
	t_Token, err := j.ValidateTokenAdmin(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtAdminClaim)
	if claims.Issuer != j.issuer {
		return "", "", domain.ErrTokenInvalid
	}
	return claims.AdminID, claims.Role, nil
}
