package auth

// DevTokenRequest represents the development-only token request
type DevTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse carries issued tokens
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
