package model

// Credential is the session credential for the dashboard API. The zero
// value is an unauthenticated credential.
type Credential struct {
	// Token is the opaque bearer token, or empty when logged out.
	Token string
}

// Authenticated reports whether the credential carries a token.
func (c Credential) Authenticated() bool {
	return c.Token != ""
}
