package domain

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderLocal  Provider = "local"
)

type AuthPayload struct {
	Username   string   `json:"username"`
	ProfileID  string   `json:"profileId"`
	Permission []string `json:"permission"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
