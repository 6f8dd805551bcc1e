package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report tags. The wire values are the fixed enumeration the mobile and web
// clients already send (Italian labels): Security, Infrastructure,
// Environment, Traffic, Other.
const (
	TagSecurity       = "Sicurezza"
	TagInfrastructure = "Infrastrutture"
	TagEnvironment    = "Ambiente"
	TagTraffic        = "Traffico"
	TagOther          = "Altro"
)

// Report lifecycle statuses.
const (
	ReportPending    = "pending"
	ReportInProgress = "in_progress"
	ReportResolved   = "resolved"
)

// IsValidTag reports whether tag is one of the fixed classification values.
func IsValidTag(tag string) bool {
	switch tag {
	case TagSecurity, TagInfrastructure, TagEnvironment, TagTraffic, TagOther:
		return true
	}
	return false
}

// IsValidReportStatus reports whether status is a known lifecycle value.
func IsValidReportStatus(status string) bool {
	switch status {
	case ReportPending, ReportInProgress, ReportResolved:
		return true
	}
	return false
}

// GeoPoint is an optional report location.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Report is a citizen-filed issue. OwnerID is polymorphic: it references
// either a user or an organization, resolved through the accounts store.
type Report struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	OwnerID     primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	Location    *GeoPoint          `bson:"location,omitempty" json:"location,omitempty"`
	Photo       string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Tag         string             `bson:"tag" json:"tag"`
	Status      string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
