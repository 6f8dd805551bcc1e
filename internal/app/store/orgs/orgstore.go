package orgstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/civicwatch/civicwatch/internal/app/system/normalize"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// Store wraps the orgs collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("orgs")}
}

var (
	// ErrDuplicate is returned when a username or email is already taken
	// within the orgs collection.
	ErrDuplicate = errors.New("an organization with this username or email already exists")

	// ErrDuplicatePhone is returned when another organization already holds
	// the phone number.
	ErrDuplicatePhone = errors.New("an organization with this phone number already exists")
)

// Create inserts a new organization. The password must already be hashed.
func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	org.ID = primitive.NewObjectID()
	org.Username = normalize.Username(org.Username)
	org.Email = normalize.Email(org.Email)
	org.Phone = normalize.Phone(org.Phone)
	if org.ReportIDs == nil {
		org.ReportIDs = []primitive.ObjectID{}
	}

	now := time.Now().UTC()
	org.CreatedAt = now
	org.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, org); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, dupError(err)
		}
		return models.Organization{}, err
	}
	return org, nil
}

// dupError maps a duplicate-key error to the sentinel for the index that
// collided. The index names are set in the indexes package.
func dupError(err error) error {
	if strings.Contains(err.Error(), "uniq_phone") {
		return ErrDuplicatePhone
	}
	return ErrDuplicate
}

// GetByID loads an organization by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Organization, error) {
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org); err != nil {
		return nil, err
	}
	return &org, nil
}

// GetByEmail looks up an organization by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Organization, error) {
	var org models.Organization
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&org); err != nil {
		return nil, err
	}
	return &org, nil
}

// Exists reports whether any organization already holds the username or email.
func (s *Store) Exists(ctx context.Context, username, email string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": normalize.Username(username)},
		bson.M{"email": normalize.Email(email)},
	}}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// PhoneExists reports whether any organization already holds the phone number.
func (s *Store) PhoneExists(ctx context.Context, phone string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"phone": normalize.Phone(phone)}).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, err
}

// Update holds the self-editable fields; zero values are left unchanged.
// PasswordHash must already be hashed by the caller.
type Update struct {
	Username     string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	Description  string
}

// UpdateFields applies a partial update and refreshes UpdatedAt.
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Username != "" {
		set["username"] = normalize.Username(upd.Username)
	}
	if upd.Email != "" {
		set["email"] = normalize.Email(upd.Email)
	}
	if upd.PasswordHash != "" {
		set["password"] = upd.PasswordHash
	}
	if upd.Phone != "" {
		set["phone"] = normalize.Phone(upd.Phone)
	}
	if upd.Address != "" {
		set["address"] = upd.Address
	}
	if upd.Description != "" {
		set["description"] = upd.Description
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return dupError(err)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PushReport appends a report back-reference to the organization's owned list.
// Returns mongo.ErrNoDocuments when the organization does not exist.
func (s *Store) PushReport(ctx context.Context, id, reportID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$push": bson.M{"report_ids": reportID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an organization by ID. Returns the number of documents
// deleted (0 or 1). Callers cascade report deletion before calling this.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
