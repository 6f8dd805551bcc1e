package reportstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// Store wraps the reports collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("reports")}
}

// Create inserts a report, applying the tag and status defaults. Validation
// of required fields and enum values happens in the handler layer so the
// failure maps to a 400, not a store error.
func (s *Store) Create(ctx context.Context, rep models.Report) (models.Report, error) {
	rep.ID = primitive.NewObjectID()
	if rep.Tag == "" {
		rep.Tag = models.TagOther
	}
	if rep.Status == "" {
		rep.Status = models.ReportPending
	}

	now := time.Now().UTC()
	rep.CreatedAt = now
	rep.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, rep); err != nil {
		return models.Report{}, err
	}
	return rep, nil
}

// GetByID loads a report by ObjectID. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Report, error) {
	var rep models.Report
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// List returns every report.
func (s *Store) List(ctx context.Context) ([]models.Report, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reports := []models.Report{}
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByOwner returns one account's reports, newest first.
func (s *Store) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"owner_id": owner}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reports := []models.Report{}
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// ListByOwners returns the reports owned by any of the given accounts.
func (s *Store) ListByOwners(ctx context.Context, owners []primitive.ObjectID) ([]models.Report, error) {
	if len(owners) == 0 {
		return []models.Report{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"owner_id": bson.M{"$in": owners}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	reports := []models.Report{}
	if err := cur.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Patch holds the fields a report update may change. Nil pointers are left
// unchanged; the merge is field-level, never a document replace.
type Patch struct {
	Title       *string
	Description *string
	Location    *models.GeoPoint
	Photo       *string
	Tag         *string
	Status      *string
}

// Update merges the patch into the stored document and returns the updated
// report. Returns mongo.ErrNoDocuments when the report does not exist.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, patch Patch) (*models.Report, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Photo != nil {
		set["photo"] = *patch.Photo
	}
	if patch.Tag != nil {
		set["tag"] = *patch.Tag
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rep models.Report
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&rep)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// Delete removes a report by ID. Returns the number of documents deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByOwner removes every report owned by the given account. Called
// before the owning account itself is deleted so no orphans remain.
func (s *Store) DeleteByOwner(ctx context.Context, owner primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"owner_id": owner})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
