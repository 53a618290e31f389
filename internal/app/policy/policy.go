// Package policy centralizes every authorization decision: ownership checks,
// admin gating, and the current-password proof rule for password changes.
// Handlers and services call into this package instead of branching on the
// admin flag themselves.
package policy

import (
	"itemtrack/internal/common"
	"itemtrack/internal/domain/model"
)

// CanAccessOwnResource reports whether sub owns the resource. Admins get no
// special treatment here: items are only ever reachable by their owner.
func CanAccessOwnResource(sub model.Subject, resourceOwnerID string) bool {
	return sub.ID == resourceOwnerID
}

// CanManageUser reports whether sub may update or delete the target account:
// the account holder themselves, or any admin.
func CanManageUser(sub model.Subject, targetUserID string) bool {
	return sub.IsAdmin || sub.ID == targetUserID
}

// RequireAdmin returns ErrForbidden unless sub holds the admin flag.
func RequireAdmin(sub model.Subject) error {
	if !sub.IsAdmin {
		return common.ErrForbidden
	}
	return nil
}

// NeedsCurrentPassword reports whether a password change must re-prove the
// current password. Self-service changes always do, admin included; only an
// admin changing someone else's password is exempt.
func NeedsCurrentPassword(sub model.Subject, targetUserID string) bool {
	if sub.IsAdmin && sub.ID != targetUserID {
		return false
	}
	return true
}

// CanSetAdminFlag reports whether sub may change an account's admin flag.
// Non-admin attempts are silently ignored by the user service.
func CanSetAdminFlag(sub model.Subject) bool {
	return sub.IsAdmin
}
