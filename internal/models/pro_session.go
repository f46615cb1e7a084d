package models

// ProSession represents an authenticated pro session
type ProSession struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// RequestLoginRequest is the payload for requesting a login token
type RequestLoginRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

// RequestLoginResponse is returned after requesting login
type RequestLoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// VerifyLoginRequest is the payload for verifying a login token
type VerifyLoginRequest struct {
	Token string `json:"token" binding:"required,min=20,max=100"`
}

// VerifyLoginResponse is returned after successful verification
type VerifyLoginResponse struct {
	Success bool        `json:"success"`
	Session *ProSession `json:"session,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// LogoutResponse is returned after logout
type LogoutResponse struct {
	Success bool `json:"success"`
}
