package domain

// Identity is the authenticated principal recovered from a valid token.
// It is immutable and lives only for the duration of one request.
type Identity struct {
	Subject string
	Roles   []string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role UserRole) bool {
	for _, r := range i.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}

// TokenPair holds the access/refresh tokens issued at sign-in.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}
