// Package token signs and verifies session tokens.
package token

import (
	"errors"
	"fmt"

	"adminauth/pkg/claims"

	jwt "github.com/dgrijalva/jwt-go"
)

var (
	ErrMissingSecret = errors.New("signing secret is empty")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidToken  = errors.New("invalid token")
)

// Codec encodes claims into HS256 JWTs and decodes them back.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
}

func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Codec{secret: key}, nil
}

func (c *Codec) Encode(cl *claims.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token signing: %w", err)
	}
	return tokenString, nil
}

// Decode verifies the signature and expiration of tokenString.
// ErrExpiredToken is returned only when the signature itself is valid.
func (c *Codec) Decode(tokenString string) (*claims.Claims, error) {
	cl := &claims.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, cl, c.keyFunc)
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors == jwt.ValidationErrorExpired {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return cl, nil
}

func (c *Codec) keyFunc(token *jwt.Token) (interface{}, error) {
	method, ok := token.Method.(*jwt.SigningMethodHMAC)
	if !ok || method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return c.secret, nil
}
