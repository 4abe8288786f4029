package model

// User is the authenticated profile from GET /users/me.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

type RegisterRequest struct {
	Username        string `form:"username" json:"username" binding:"required"`
	FullName        string `form:"full_name" json:"full_name" binding:"required"`
	Password        string `form:"password" json:"password" binding:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" json:"-" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is the password-grant reply from POST /token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
