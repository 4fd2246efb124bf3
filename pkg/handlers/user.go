package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"adminauth/pkg/claims"
	"adminauth/pkg/user"
)

const (
	maxBodyBytes = 1 << 20

	msgLoginSuccessful    = "Login successful"
	msgInvalidCredentials = "Invalid credentials"
	msgAuthenticated      = "Authenticated"
	msgAuthRequired       = "Authentication required"
	msgInternalError      = "Internal server error"
)

type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string      `json:"token"`
	Message string      `json:"message"`
	User    claims.User `json:"user"`
}

type AuthResponse struct {
	Message string      `json:"message"`
	User    claims.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenEncoder interface {
	Encode(c *claims.Claims) (string, error)
}

type Handler struct {
	Service user.ServiceInterface
	Tokens  TokenEncoder
	Logger  *slog.Logger
}

func NewUserHandler(service user.ServiceInterface, tokens TokenEncoder, logger *slog.Logger) *Handler {
	return &Handler{
		Service: service,
		Tokens:  tokens,
		Logger:  logger,
	}
}

// Login handles POST /api/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if err := DecodeJSONBody(w, r, &req); err != nil {
		// an unreadable body is treated like missing credentials
		h.Logger.Warn("login", "error", err)
		req = LoginForm{}
	}

	c, err := h.Service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrMissingCredentials) || errors.Is(err, user.ErrInvalidCredentials) {
			if ok := WriteResp(w, h.Logger, MessageResponse{Message: msgInvalidCredentials}, http.StatusUnauthorized); ok {
				h.Logger.Warn("login", "error", err.Error(), "username", req.Username)
			}
			return
		}
		h.Logger.Error("login", "error", err)
		WriteResp(w, h.Logger, MessageResponse{Message: msgInternalError}, http.StatusInternalServerError)
		return
	}

	tokenString, err := h.Tokens.Encode(c)
	if err != nil {
		h.Logger.Error("token signing", "error", err)
		WriteResp(w, h.Logger, MessageResponse{Message: msgInternalError}, http.StatusInternalServerError)
		return
	}

	resp := LoginResponse{
		Token:   tokenString,
		Message: msgLoginSuccessful,
		User:    c.User(),
	}
	if ok := WriteResp(w, h.Logger, resp, http.StatusOK); ok {
		h.Logger.Info("login", "user", c.UserID, "expires_at", c.Expiry())
	}
}

// CheckAuth handles GET /api/check-auth. The bearer token has already been
// verified by middleware.CheckJWT.
func (h *Handler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	c, ok := claims.FromContext(r.Context())
	if !ok {
		WriteResp(w, h.Logger, MessageResponse{Message: msgAuthRequired}, http.StatusUnauthorized)
		return
	}

	WriteResp(w, h.Logger, AuthResponse{
		Message: msgAuthenticated,
		User:    c.User(),
	}, http.StatusOK)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteResp(w, h.Logger, map[string]string{"status": "ok"}, http.StatusOK)
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(req); err != nil {
		return err
	}
	return nil
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}
