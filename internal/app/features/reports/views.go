package reports

import (
	"context"

	"github.com/civicwatch/civicwatch/internal/app/store/accounts"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// reportView is a report annotated with its owner's display identity. Exactly
// one of the user and organization branches is populated; both stay null when
// the owner account no longer exists.
type reportView struct {
	models.Report
	User         *string `json:"user"`
	UserPhone    *string `json:"userPhone"`
	Organization *orgRef `json:"organization"`
}

type orgRef struct {
	Name string `json:"name"`
}

func annotate(rep models.Report, owner *accounts.Owner) reportView {
	v := reportView{Report: rep}
	if owner == nil {
		return v
	}
	switch owner.Kind {
	case models.KindUser:
		name := owner.Username
		v.User = &name
		if owner.Phone != "" {
			phone := owner.Phone
			v.UserPhone = &phone
		}
	case models.KindOrg:
		v.Organization = &orgRef{Name: owner.Username}
	}
	return v
}

// annotateAll resolves each report's owner, caching per owner ID so a list
// dominated by a few prolific accounts costs a handful of lookups.
func (h *Handler) annotateAll(ctx context.Context, reps []models.Report) ([]reportView, error) {
	cache := map[string]*accounts.Owner{}
	views := make([]reportView, 0, len(reps))
	for _, rep := range reps {
		key := rep.OwnerID.Hex()
		owner, ok := cache[key]
		if !ok {
			var err error
			owner, err = h.Owners.Resolve(ctx, rep.OwnerID)
			if err != nil {
				return nil, err
			}
			cache[key] = owner
		}
		views = append(views, annotate(rep, owner))
	}
	return views, nil
}
