package auth

import "github.com/spec-kit/identity-service/internal/domain"

// CanAccess decides whether the caller may act on the target user's
// resources: admins may act on anyone, everyone else only on themselves.
// Pure function, no I/O.
func CanAccess(caller domain.Identity, targetID string) bool {
	if caller.HasRole(domain.RoleAdmin) {
		return true
	}
	return caller.Subject == targetID
}
