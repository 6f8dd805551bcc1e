package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// TestPassword is the plaintext every fixture account is created with.
const TestPassword = "Password1"

var (
	hashOnce sync.Once
	hashVal  string
)

// PasswordHash returns a bcrypt hash of TestPassword, computed once per test
// binary at minimum cost so fixtures stay fast.
func PasswordHash(t *testing.T) string {
	t.Helper()
	hashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash test password: %v", err)
		}
		hashVal = string(h)
	})
	return hashVal
}

// CreateUser inserts an active user with the given identity.
func (f *Fixtures) CreateUser(ctx context.Context, username, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: PasswordHash(f.t),
		Status:       models.StatusActive,
		ReportIDs:    []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateSuspendedUser inserts a user whose account has been suspended.
func (f *Fixtures) CreateSuspendedUser(ctx context.Context, username, email string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, username, email)
	_, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		map[string]any{"$set": map[string]any{"status": models.StatusSuspended}})
	if err != nil {
		f.t.Fatalf("failed to suspend test user: %v", err)
	}
	u.Status = models.StatusSuspended
	return u
}

// CreateOrg inserts an organization account with the given identity.
func (f *Fixtures) CreateOrg(ctx context.Context, username, email, phone string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:           primitive.NewObjectID(),
		Username:     username,
		Email:        email,
		PasswordHash: PasswordHash(f.t),
		Phone:        phone,
		Address:      "Via Roma 1, Torino",
		Description:  "Test organization",
		ReportIDs:    []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("orgs").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateReport inserts a report owned by the given account.
func (f *Fixtures) CreateReport(ctx context.Context, owner primitive.ObjectID, title string) models.Report {
	f.t.Helper()

	now := time.Now().UTC()
	rep := models.Report{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test report description",
		OwnerID:     owner,
		Tag:         models.TagOther,
		Status:      models.ReportPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("reports").InsertOne(ctx, rep); err != nil {
		f.t.Fatalf("failed to create test report: %v", err)
	}
	return rep
}
