package identity

// Provider identifies a federated login source
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderNaver  Provider = "naver"
	ProviderKakao  Provider = "kakao"
)

// CanonicalIdentity is the provider-agnostic shape of "who logged in".
// It is produced fresh per login attempt and never persisted directly.
type CanonicalIdentity struct {
	Provider    Provider
	ProviderID  string
	Email       string
	DisplayName string
	PhoneNumber string
}

// returns the synthetic "provider:providerId" identifier embedded in tokens
func (ci CanonicalIdentity) GlobalID() string {
	return string(ci.Provider) + ":" + ci.ProviderID
}
