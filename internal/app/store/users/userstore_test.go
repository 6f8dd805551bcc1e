package userstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/civicwatch/civicwatch/internal/app/store/users"
	"github.com/civicwatch/civicwatch/internal/domain/models"
	"github.com/civicwatch/civicwatch/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Username:     "mario",
		Email:        "  Mario@Example.COM ",
		PasswordHash: "hashed",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "mario@example.com" {
		t.Errorf("email: got %q, want normalized lowercase", created.Email)
	}
	if created.Status != models.StatusActive {
		t.Errorf("status: got %q, want %q", created.Status, models.StatusActive)
	}
	if created.ReportIDs == nil {
		t.Error("expected ReportIDs to be initialized")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Note: unique indexes are created by SetupTestDB

	_, err := store.Create(ctx, models.User{Username: "mario", Email: "m@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err = store.Create(ctx, models.User{Username: "luigi", Email: "m@example.com", PasswordHash: "h"})
	if !errors.Is(err, userstore.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	f.CreateUser(ctx, "mario", "mario@example.com")

	// Lookup is normalized, so a differently-cased query still matches.
	found, err := store.GetByEmail(ctx, "Mario@Example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if found.Username != "mario" {
		t.Errorf("username: got %q", found.Username)
	}

	_, err = store.GetByEmail(ctx, "missing@example.com")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	f.CreateUser(ctx, "mario", "mario@example.com")

	tests := []struct {
		username, email string
		want            bool
	}{
		{"mario", "other@example.com", true},
		{"other", "mario@example.com", true},
		{"mario", "mario@example.com", true},
		{"other", "other@example.com", false},
	}
	for _, tt := range tests {
		got, err := store.Exists(ctx, tt.username, tt.email)
		if err != nil {
			t.Fatalf("Exists(%q, %q): %v", tt.username, tt.email, err)
		}
		if got != tt.want {
			t.Errorf("Exists(%q, %q) = %v, want %v", tt.username, tt.email, got, tt.want)
		}
	}
}

func TestStore_List_ExcludesPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	f.CreateUser(ctx, "mario", "mario@example.com")
	f.CreateUser(ctx, "luigi", "luigi@example.com")

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len: got %d, want 2", len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Errorf("password hash leaked for %q", u.Username)
		}
	}
}

func TestStore_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateUser(ctx, "mario", "mario@example.com")

	share := true
	err := store.UpdateFields(ctx, u.ID, userstore.Update{
		Email:         "new@example.com",
		SharePosition: &share,
	})
	if err != nil {
		t.Fatalf("UpdateFields failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Email != "new@example.com" {
		t.Errorf("email: got %q", got.Email)
	}
	if !got.SharePosition {
		t.Error("share_position: want true")
	}
	// Untouched fields survive the partial update.
	if got.Username != "mario" {
		t.Errorf("username: got %q, want unchanged", got.Username)
	}
	if !got.UpdatedAt.After(u.UpdatedAt) {
		t.Error("UpdatedAt should advance")
	}
}

func TestStore_UpdateFields_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.UpdateFields(ctx, primitive.NewObjectID(), userstore.Update{Username: "x"})
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateUser(ctx, "mario", "mario@example.com")

	if err := store.SetStatus(ctx, u.ID, models.StatusSuspended); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}
	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.StatusSuspended {
		t.Errorf("status: got %q, want %q", got.Status, models.StatusSuspended)
	}

	if err := store.SetStatus(ctx, primitive.NewObjectID(), models.StatusActive); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_PushReport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateUser(ctx, "mario", "mario@example.com")
	repID := primitive.NewObjectID()

	if err := store.PushReport(ctx, u.ID, repID); err != nil {
		t.Fatalf("PushReport failed: %v", err)
	}
	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ReportIDs) != 1 || got.ReportIDs[0] != repID {
		t.Errorf("report_ids: got %v, want [%s]", got.ReportIDs, repID.Hex())
	}

	if err := store.PushReport(ctx, primitive.NewObjectID(), repID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for missing user, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	u := f.CreateUser(ctx, "mario", "mario@example.com")

	n, err := store.Delete(ctx, u.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted: got %d, want 1", n)
	}

	n, err = store.Delete(ctx, u.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("deleted: got %d, want 0", n)
	}
}
