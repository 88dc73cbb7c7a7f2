package types

// AuthProvider identifies how a user authenticates
type AuthProvider string

const (
	AuthProviderPassword AuthProvider = "password"
)
