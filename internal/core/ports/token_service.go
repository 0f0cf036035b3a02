package ports

// TokenService issues and verifies signed, time-limited, role-scoped
// tokens. The admin and user roles are signed with different secrets;
// a token issued for one role must never verify against the other.
type TokenService interface {
	Issue(username, role string) (string, error)
	// Verify checks token against the secret of the given role; the role
	// is decided by the caller (from the requested resource), never read
	// out of the token itself. Failures are domain.ErrTokenMalformed,
	// domain.ErrTokenExpired or domain.ErrTokenInvalid.
	Verify(token, role string) (string, error)
}
