// Package accountpolicy decides who may change or remove an account.
//
// Authorization rules:
//   - A user edits or deletes only their own account
//   - An organization edits or deletes only its own account
//   - Organizations additionally manage user accounts through the moderation
//     endpoints, which reportpolicy and the org routes gate separately
package accountpolicy

import (
	"github.com/civicwatch/civicwatch/internal/app/system/auth"
)

// CanModify reports whether the caller may edit or delete the account with
// the given ID. Identity is self-service: the target must be the caller.
func CanModify(claims auth.Claims, targetID string) bool {
	return claims.ID != "" && claims.ID == targetID
}
