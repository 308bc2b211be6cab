package entity

// AuthProvider identifies which identity provider owns an account's credentials.
type AuthProvider string

const (
	// ProviderLocal marks accounts with a password managed by this service.
	ProviderLocal AuthProvider = "local"

	// ProviderGoogle marks accounts created through Google sign-in.
	ProviderGoogle AuthProvider = "google"

	// ProviderGitHub marks accounts created through GitHub sign-in.
	ProviderGitHub AuthProvider = "github"
)

// IsValid reports whether the provider is one of the known values.
func (p AuthProvider) IsValid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle, ProviderGitHub:
		return true
	}

	return false
}

// IsSocial reports whether the provider is an external identity provider.
func (p AuthProvider) IsSocial() bool {
	return p == ProviderGoogle || p == ProviderGitHub
}
