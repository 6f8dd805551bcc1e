package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization is a moderating account (municipality, agency, association).
// Unlike users, organizations carry no suspension state.
type Organization struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username     string               `bson:"username" json:"username"`
	Email        string               `bson:"email" json:"email"`
	PasswordHash string               `bson:"password" json:"-"`
	Phone        string               `bson:"phone" json:"phone"`
	Address      string               `bson:"address" json:"address"`
	Description  string               `bson:"description" json:"description"`
	ReportIDs    []primitive.ObjectID `bson:"report_ids" json:"report_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
