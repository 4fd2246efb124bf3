package claims

import (
	"context"
	"encoding/json"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

type contextKey string

const (
	TokenContextKey contextKey = "token"
)

// Claims is the payload carried by a session token.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.StandardClaims
}

// UnmarshalJSON decodes a token payload. An is_admin that is missing or not a
// JSON boolean decodes as false.
func (c *Claims) UnmarshalJSON(data []byte) error {
	type plain Claims
	var aux struct {
		plain
		IsAdmin json.RawMessage `json:"is_admin"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var isAdmin bool
	if err := json.Unmarshal(aux.IsAdmin, &isAdmin); err != nil {
		isAdmin = false
	}

	*c = Claims(aux.plain)
	c.IsAdmin = isAdmin
	return nil
}

// User is the identity summary echoed back to clients.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func (c *Claims) User() User {
	return User{
		ID:       c.UserID,
		Username: c.Username,
		IsAdmin:  c.IsAdmin,
	}
}

// Expiry returns the expiration instant, zero if the token has none.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(c.ExpiresAt, 0)
}

func NewContext(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, TokenContextKey, c)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(TokenContextKey).(*Claims)
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}
