package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicwatch/civicwatch/internal/app/system/normalize"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// Store wraps the users collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// ErrDuplicate is returned when a username or email is already taken within
// the users collection.
var ErrDuplicate = errors.New("a user with this username or email already exists")

// Create inserts a new user after normalizing identity fields. The caller is
// responsible for having hashed the password; Create never touches it.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Username = normalize.Username(u.Username)
	u.Email = normalize.Email(u.Email)
	if u.Status == "" {
		u.Status = models.StatusActive
	}
	if u.ReportIDs == nil {
		u.ReportIDs = []primitive.ObjectID{}
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicate
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Exists reports whether any user already holds the given username or email.
// Used for a clean Conflict before insert; the unique indexes remain the
// backstop against races.
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

// List returns every user account with the password hash projected out.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	proj := options.Find().SetProjection(bson.M{"password": 0})
	cur, err := s.c.Find(ctx, bson.M{}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Update holds the self-editable fields. Zero values mean "leave unchanged";
// PasswordHash must already be hashed by the caller.
type Update struct {
	Username      string
	Email         string
	PasswordHash  string
	Phone         string
	SharePosition *bool
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
	if upd.SharePosition != nil {
		set["share_position"] = *upd.SharePosition
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus flips the suspension flag. Returns mongo.ErrNoDocuments when the
// user does not exist.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// PushReport appends a report back-reference to the user's owned list.
// Returns mongo.ErrNoDocuments when the user does not exist.
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

// Delete removes a user by ID. Returns the number of documents deleted (0 or 1).
// Callers cascade report deletion before calling this.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
