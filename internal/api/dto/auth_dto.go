package dto

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Subdivision string `json:"subdivision"`
}

// LoginResponse mirrors the contract the dashboard consumes: the raw
// token plus the role-tagged profile projection.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}
