package services

import (
	"errors"
	"time"

	"ecospin/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type CustomClaims struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	LanguageCode string `json:"language_code"`
	PhotoURL     string `json:"photo_url"`
	jwt.RegisteredClaims
}

type Authentication struct {
	secret string
}

func NewAuthentication(secret string) (*Authentication, error) {
	if secret == "" {
		return nil, errors.New("empty JWT secret")
	}
	return &Authentication{secret}, nil
}

func (authentication *Authentication) CreateToken(user *models.User, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		LanguageCode: user.LanguageCode,
		PhotoURL:     user.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(authentication.secret))
}

func (authentication *Authentication) Validate(token string) (*models.UserFromAuth, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(authentication.secret), nil
	}

	jwtToken, err := jwt.ParseWithClaims(token, &CustomClaims{}, keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*CustomClaims)
	if !ok || !jwtToken.Valid {
		return nil, errors.New("invalid token claims")
	}

	return &models.UserFromAuth{
		ID:           claims.ID,
		Username:     claims.Username,
		Email:        claims.Email,
		Role:         claims.Role,
		LanguageCode: claims.LanguageCode,
		PhotoURL:     claims.PhotoURL,
	}, nil
}
