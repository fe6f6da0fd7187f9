package auth

import "leavedesk/internal/shared/identity"

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResponse struct {
	Token      string        `json:"token"`
	User       identity.View `json:"user"`
	RedirectTo string        `json:"redirect_to"`
	ExpiresIn  int64         `json:"expires_in"`
}

type MeResponse struct {
	User identity.View `json:"user"`
}
