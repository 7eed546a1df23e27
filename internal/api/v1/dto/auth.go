package dto

// LoginRequest carries the credentials for the login gate.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token for subsequent requests.
type LoginResponse struct {
	Token string `json:"token"`
}
