package auth

import "time"

type User struct {
	ID        string    `json:"userId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type SignupRequest struct {
	Username string `json:"username"`
}

type PasswordRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}
