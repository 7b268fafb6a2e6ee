package authsdk

// Wire types shared by the server handlers and the SDK. Field names follow
// the JSON wire shape (camelCase).

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
}

type RefreshRequest struct {
	Token string `json:"token"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type LogoutRequest struct {
	Token string `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Secret   string `json:"secretCode"`
}

type ProfileResponse struct {
	UserData UserData `json:"userData"`
}

type AuthCheckResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
