package entity

// ProviderType identifies the origin of an account's identity proof.
type ProviderType string

const (
	// ProviderTypeLocal indicates a username/password account created through signup.
	ProviderTypeLocal ProviderType = "local"
	// ProviderTypeGoogle indicates an account bridged from Google Sign-In.
	ProviderTypeGoogle ProviderType = "google"
)

// FederatedIdentity holds the claims delivered by an external identity
// provider after a successful handshake. It is transient: consumed to
// resolve or create a local account, then discarded. It is never persisted.
type FederatedIdentity struct {
	Provider    ProviderType // The provider that vouched for this identity.
	ProviderID  string       // The provider-specific subject, e.g. Google's 'sub' claim.
	Email       string       // The verified email delivered by the provider.
	DisplayName string       // The display name delivered by the provider.
}
