package dto

import "github.com/codewithlokesh/intrvu-backend/internal/model"

type SignupRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type VerifyRequest struct {
	Email      string `json:"email"`
	VerifyCode string `json:"verify_code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}
