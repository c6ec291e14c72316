package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenSubject is returned when a token carries no subject email.
var ErrTokenSubject = errors.New("token has no subject")

type jwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 JWT whose subject is the user's email.
func GenerateToken(secret, email string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := &jwtCustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates signature and expiry at the instant returned by now and
// returns the embedded email. Expired tokens yield an error matching jwt.ErrTokenExpired.
func ParseToken(secret, tokenString string, now func() time.Time) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}

	if claims.Subject != "" {
		return claims.Subject, nil
	}
	if claims.Email != "" {
		return claims.Email, nil
	}
	return "", ErrTokenSubject
}
