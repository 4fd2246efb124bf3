package token_test

import (
	"strings"
	"sync"
	"testing"
	"time"

	"adminauth/pkg/claims"
	"adminauth/pkg/token"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newCodec(t *testing.T, secret string) *token.Codec {
	t.Helper()
	c, err := token.NewCodec([]byte(secret))
	require.NoError(t, err)
	return c
}

func adminClaims(exp time.Time) *claims.Claims {
	return &claims.Claims{
		UserID:   1,
		Username: "admin",
		IsAdmin:  true,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-time.Minute).Unix(),
			ExpiresAt: exp.Unix(),
		},
	}
}

func TestNewCodec_EmptySecret(t *testing.T) {
	c, err := token.NewCodec(nil)
	assert.ErrorIs(t, err, token.ErrMissingSecret)
	assert.Nil(t, c)

	c, err = token.NewCodec([]byte{})
	assert.ErrorIs(t, err, token.ErrMissingSecret)
	assert.Nil(t, c)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newCodec(t, testSecret)
	exp := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name string
		in   *claims.Claims
	}{
		{name: "admin", in: adminClaims(exp)},
		{name: "non-admin", in: &claims.Claims{UserID: 2, Username: "viewer", IsAdmin: false}},
		{name: "large id", in: &claims.Claims{UserID: 2147483647, Username: "ops", IsAdmin: true}},
		{name: "negative id", in: &claims.Claims{UserID: -3, Username: "ghost"}},
		{name: "zero values", in: &claims.Claims{}},
		{name: "unicode username", in: &claims.Claims{UserID: 42, Username: "관리자 ✓ \"quoted\""}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := test.in
			if in.ExpiresAt == 0 {
				in.ExpiresAt = exp.Unix()
			}

			s, err := c.Encode(in)
			require.NoError(t, err)
			assert.Len(t, strings.Split(s, "."), 3)

			out, err := c.Decode(s)
			require.NoError(t, err)
			assert.Equal(t, in.UserID, out.UserID)
			assert.Equal(t, in.Username, out.Username)
			assert.Equal(t, in.IsAdmin, out.IsAdmin)
			assert.Equal(t, in.ExpiresAt, out.ExpiresAt)
			assert.Equal(t, in.User(), out.User())
		})
	}
}

func TestCodec_EncodeDeterministic(t *testing.T) {
	c := newCodec(t, testSecret)
	in := adminClaims(time.Now().Add(time.Hour))

	a, err := c.Encode(in)
	require.NoError(t, err)
	b, err := c.Encode(in)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCodec_WrongSecret(t *testing.T) {
	s, err := newCodec(t, testSecret).Encode(adminClaims(time.Now().Add(time.Hour)))
	require.NoError(t, err)

	_, err = newCodec(t, "other-secret").Decode(s)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
	assert.NotErrorIs(t, err, token.ErrExpiredToken)
}

func TestCodec_Expired(t *testing.T) {
	c := newCodec(t, testSecret)

	s, err := c.Encode(adminClaims(time.Now().Add(-time.Second)))
	require.NoError(t, err)

	out, err := c.Decode(s)
	assert.ErrorIs(t, err, token.ErrExpiredToken)
	assert.NotErrorIs(t, err, token.ErrInvalidToken)
	assert.Nil(t, out)
}

func TestCodec_ExpiredWithWrongSecret(t *testing.T) {
	s, err := newCodec(t, "other-secret").Encode(adminClaims(time.Now().Add(-time.Hour)))
	require.NoError(t, err)

	_, err = newCodec(t, testSecret).Decode(s)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestCodec_Tampered(t *testing.T) {
	c := newCodec(t, testSecret)

	user, err := c.Encode(&claims.Claims{
		UserID:   2,
		Username: "guest",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	})
	require.NoError(t, err)
	admin, err := c.Encode(adminClaims(time.Now().Add(time.Hour)))
	require.NoError(t, err)

	u := strings.Split(user, ".")
	a := strings.Split(admin, ".")
	forged := u[0] + "." + a[1] + "." + u[2]

	_, err = c.Decode(forged)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestCodec_RejectsOtherAlgorithms(t *testing.T) {
	c := newCodec(t, testSecret)
	cl := adminClaims(time.Now().Add(time.Hour))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, cl).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, cl).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, s := range map[string]string{"none": none, "HS512": hs512} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Decode(s)
			assert.ErrorIs(t, err, token.ErrInvalidToken)
		})
	}
}

func TestCodec_Malformed(t *testing.T) {
	c := newCodec(t, testSecret)

	tests := []string{
		"",
		"abc",
		"a.b",
		"a.b.c",
		"not.a.jwt.at.all",
	}
	for _, s := range tests {
		_, err := c.Decode(s)
		assert.ErrorIs(t, err, token.ErrInvalidToken, "token %q", s)
	}
}

func TestCodec_IsAdminDefaultsFalse(t *testing.T) {
	c := newCodec(t, testSecret)

	tests := []struct {
		name    string
		isAdmin any
		set     bool
		want    bool
	}{
		{name: "missing", want: false},
		{name: "null", isAdmin: nil, set: true, want: false},
		{name: "number", isAdmin: 1, set: true, want: false},
		{name: "string", isAdmin: "true", set: true, want: false},
		{name: "false", isAdmin: false, set: true, want: false},
		{name: "true", isAdmin: true, set: true, want: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			payload := jwt.MapClaims{
				"user_id":  7,
				"username": "viewer",
				"exp":      time.Now().Add(time.Hour).Unix(),
			}
			if test.set {
				payload["is_admin"] = test.isAdmin
			}

			s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte(testSecret))
			require.NoError(t, err)

			out, err := c.Decode(s)
			require.NoError(t, err)
			assert.Equal(t, 7, out.UserID)
			assert.Equal(t, "viewer", out.Username)
			assert.Equal(t, test.want, out.IsAdmin)
		})
	}
}

func TestCodec_WrongClaimTypes(t *testing.T) {
	c := newCodec(t, testSecret)

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "one",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = c.Decode(s)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestCodec_Concurrent(t *testing.T) {
	c := newCodec(t, testSecret)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			in := adminClaims(time.Now().Add(time.Hour))
			in.UserID = id

			s, err := c.Encode(in)
			assert.NoError(t, err)

			out, err := c.Decode(s)
			if assert.NoError(t, err) {
				assert.Equal(t, id, out.UserID)
			}
		}(i)
	}
	wg.Wait()
}
