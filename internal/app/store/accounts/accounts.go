// Package accounts resolves the polymorphic owner reference on reports.
// A report's owner ID may point at a user or an organization; Resolve tries
// the users collection first and falls back to orgs, mirroring how reports
// were historically created. An ID found in neither collection resolves to
// nil, which read views render as an unknown owner.
package accounts

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// Owner is the denormalized display view of a report's owning account.
type Owner struct {
	Kind     models.AccountKind
	Username string
	Phone    string
}

// Resolver looks up owner display data across both account collections.
type Resolver struct {
	users *mongo.Collection
	orgs  *mongo.Collection
}

func NewResolver(db *mongo.Database) *Resolver {
	return &Resolver{
		users: db.Collection("users"),
		orgs:  db.Collection("orgs"),
	}
}

// Resolve returns the owner display data for an account ID, or (nil, nil)
// when the ID resolves to neither account kind.
func (r *Resolver) Resolve(ctx context.Context, id primitive.ObjectID) (*Owner, error) {
	proj := options.FindOne().SetProjection(bson.M{"username": 1, "phone": 1})

	var u struct {
		Username string `bson:"username"`
		Phone    string `bson:"phone"`
	}
	err := r.users.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&u)
	if err == nil {
		return &Owner{Kind: models.KindUser, Username: u.Username, Phone: u.Phone}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	var o struct {
		Username string `bson:"username"`
	}
	err = r.orgs.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&o)
	if err == nil {
		return &Owner{Kind: models.KindOrg, Username: o.Username}, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	return nil, nil
}

// UserNames returns every user ID with its username in one batch query.
// Used by the user-only report view to avoid a lookup per report.
func (r *Resolver) UserNames(ctx context.Context) (map[primitive.ObjectID]string, error) {
	proj := options.Find().SetProjection(bson.M{"username": 1})
	cur, err := r.users.Find(ctx, bson.M{}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	names := make(map[primitive.ObjectID]string)
	for cur.Next(ctx) {
		var row struct {
			ID       primitive.ObjectID `bson:"_id"`
			Username string             `bson:"username"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		names[row.ID] = row.Username
	}
	return names, cur.Err()
}
