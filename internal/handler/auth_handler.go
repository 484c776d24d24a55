package handlers

import (
	"net/http"
	"strings"
	"time"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Email     string     `json:"email"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type VerifyResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	admin, token, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err, "Invalid credentials")
		return
	}

	writeSuccess(w, LoginResponse{
		Success: true,
		Token:   token,
		User: UserResponse{
			ID:       admin.AdminID,
			Username: admin.Username,
			Role:     admin.Role,
			Email:    admin.Email,
		},
	}, http.StatusOK)
}

func (h *Handlers) Verify(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		WriteError(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	admin, err := h.AuthService.GetProfile(r.Context(), principal.AdminID)
	if err != nil {
		writeServiceError(w, err, "User not found")
		return
	}

	writeSuccess(w, VerifyResponse{
		Success: true,
		User: UserResponse{
			ID:        admin.AdminID,
			Username:  admin.Username,
			Role:      admin.Role,
			Email:     admin.Email,
			LastLogin: admin.LastLoginAt,
		},
	}, http.StatusOK)
}

// Logout is advisory; the client discards its token.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, Response{Success: true, Message: "Logged out successfully"}, http.StatusOK)
}
