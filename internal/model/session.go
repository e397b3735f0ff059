package model

// Profile is the lightweight user profile kept next to the token. It is not
// bound to the token cryptographically; the backend stays the authority.
type Profile struct {
	Username string `json:"username,omitempty"`
	Role     Role   `json:"role"`
	Branch   Branch `json:"branch"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	Role        Role   `json:"role"`
	Branch      Branch `json:"branch"`
}
