package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"adminauth/pkg/claims"
	"adminauth/pkg/token"
)

const (
	bearerPrefix = "Bearer "

	MsgAuthRequired = "Authentication required"
	MsgTokenExpired = "Token expired"
	MsgInvalidToken = "Invalid token"
)

var (
	ErrMissingAuthHeader   = errors.New("missing authorization header")
	ErrMalformedAuthHeader = errors.New("malformed authorization header")
)

type TokenDecoder interface {
	Decode(tokenString string) (*claims.Claims, error)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", ErrMissingAuthHeader
	}
	if !strings.HasPrefix(auth, bearerPrefix) {
		return "", ErrMalformedAuthHeader
	}
	return strings.Split(auth, " ")[1], nil
}

// CheckJWT rejects requests without a valid bearer token and stores the
// decoded claims in the request context.
func CheckJWT(decoder TokenDecoder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := BearerToken(r)
			if err != nil {
				logger.Warn("check jwt", "error", err, "path", r.URL.Path)
				writeMessage(w, logger, http.StatusUnauthorized, MsgAuthRequired)
				return
			}

			c, err := decoder.Decode(tokenString)
			if err != nil {
				msg := MsgInvalidToken
				if errors.Is(err, token.ErrExpiredToken) {
					msg = MsgTokenExpired
				}
				logger.Warn("check jwt", "error", err, "path", r.URL.Path)
				writeMessage(w, logger, http.StatusUnauthorized, msg)
				return
			}

			next.ServeHTTP(w, r.WithContext(claims.NewContext(r.Context(), c)))
		})
	}
}

func writeMessage(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": msg}); err != nil {
		logger.Error("failed to write JSON response", slog.Any("error", err))
	}
}
