package reportpolicy_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/civicwatch/civicwatch/internal/app/policy/reportpolicy"
	"github.com/civicwatch/civicwatch/internal/app/system/auth"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

func TestCanEdit(t *testing.T) {
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	tests := []struct {
		name   string
		claims auth.Claims
		owner  primitive.ObjectID
		want   bool
	}{
		{
			name:   "owning user",
			claims: auth.Claims{ID: owner.Hex(), Kind: models.KindUser},
			owner:  owner,
			want:   true,
		},
		{
			name:   "other user",
			claims: auth.Claims{ID: stranger.Hex(), Kind: models.KindUser},
			owner:  owner,
			want:   false,
		},
		{
			name:   "any org",
			claims: auth.Claims{ID: stranger.Hex(), Kind: models.KindOrg},
			owner:  owner,
			want:   true,
		},
		{
			name:   "owning org",
			claims: auth.Claims{ID: owner.Hex(), Kind: models.KindOrg},
			owner:  owner,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reportpolicy.CanEdit(tt.claims, tt.owner); got != tt.want {
				t.Errorf("CanEdit = %v, want %v", got, tt.want)
			}
			// Deletion mirrors editing.
			if got := reportpolicy.CanDelete(tt.claims, tt.owner); got != tt.want {
				t.Errorf("CanDelete = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanModerate(t *testing.T) {
	if reportpolicy.CanModerate(auth.Claims{ID: "64f0c1", Kind: models.KindUser}) {
		t.Error("user must not moderate")
	}
	if !reportpolicy.CanModerate(auth.Claims{ID: "64f0c1", Kind: models.KindOrg}) {
		t.Error("org must moderate")
	}
}
