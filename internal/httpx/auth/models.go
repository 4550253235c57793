package auth

// TokenResponse represents an access token response
// swagger:model TokenResponse
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"<JWT>"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int    `json:"expires_in" example:"900"`
}

// LoginRequest represents the password login request body
// swagger:model LoginRequest
type LoginRequest struct {
	Username string `json:"username" validate:"notblank" example:"admin"`
	Password string `json:"password" validate:"required" example:"Secretp@ssw0rd"`
}

// MeResponse describes the current principal
// swagger:model MeResponse
type MeResponse struct {
	Subject   string   `json:"subject" example:"user:admin"`
	Roles     []string `json:"roles"`
	Perms     []string `json:"perms"`
	Superuser bool     `json:"superuser"`
}
