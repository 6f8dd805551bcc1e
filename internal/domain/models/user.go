package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User statuses. Suspension blocks login but does not invalidate tokens that
// were issued before the suspension took effect.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// User is an individual citizen account.
//
// ReportIDs holds back-references to reports the user filed; the report
// documents themselves live in the reports collection and are not owned
// copies.
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username      string               `bson:"username" json:"username"`
	Email         string               `bson:"email" json:"email"`
	PasswordHash  string               `bson:"password" json:"-"`
	SharePosition bool                 `bson:"share_position" json:"share_position"`
	Phone         string               `bson:"phone,omitempty" json:"phone,omitempty"`
	Status        string               `bson:"status" json:"status"`
	ReportIDs     []primitive.ObjectID `bson:"report_ids" json:"report_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
