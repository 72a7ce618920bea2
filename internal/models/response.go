package models

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend,omitempty"`
}

type CartMessageResponse struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type UploadResponse struct {
	OrderID string   `json:"order_id"`
	URLs    []string `json:"urls"`
	Errors  []string `json:"errors,omitempty"`
}

// AuthSession is returned by sign-in. AccessToken is sent back as a bearer
// token on user-scoped routes.
type AuthSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	ExpiresIn    int      `json:"expires_in"`
	ExpiresAt    int64    `json:"expires_at"`
	User         Identity `json:"user"`
}
