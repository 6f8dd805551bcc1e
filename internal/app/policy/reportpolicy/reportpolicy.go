// Package reportpolicy decides who may change or remove a report.
//
// Authorization rules:
//   - The owning account (user or organization) can edit and delete its report
//   - Any organization account can edit and delete any report, acting as a
//     moderator over public submissions
//   - Everyone else is denied; reads are public and never pass through here
package reportpolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicwatch/civicwatch/internal/app/system/auth"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// CanEdit reports whether the caller may update the report owned by ownerID.
func CanEdit(claims auth.Claims, ownerID primitive.ObjectID) bool {
	if claims.Kind == models.KindOrg {
		return true
	}
	return claims.ID == ownerID.Hex()
}

// CanDelete reports whether the caller may remove the report owned by ownerID.
// Deletion follows the same owner-or-organization rule as editing.
func CanDelete(claims auth.Claims, ownerID primitive.ObjectID) bool {
	return CanEdit(claims, ownerID)
}

// CanModerate reports whether the caller may use the organization-wide
// moderation surface (suspending users, removing arbitrary content).
func CanModerate(claims auth.Claims) bool {
	return claims.Kind == models.KindOrg
}
