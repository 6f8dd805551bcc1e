package reports

import (
	"context"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/system/auth"
	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/app/system/sanitize"
	"github.com/civicwatch/civicwatch/internal/app/system/timeouts"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// createRequest is the wire envelope the clients send: the report fields live
// under a "reportData" key.
type createRequest struct {
	ReportData reportData `json:"reportData"`
}

type reportData struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    *models.GeoPoint `json:"location"`
	Photo       string           `json:"photo"`
	Tag         string           `json:"tag"`
}

func (p reportData) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Tag, validation.By(optionalTag)),
	)
}

func optionalTag(value any) error {
	tag, _ := value.(string)
	if tag == "" || models.IsValidTag(tag) {
		return nil
	}
	return errors.New("must be a valid tag")
}

// HandleCreate files a new report owned by the caller and records the
// back-reference on the owning account. A missing owner account (stale token)
// is surfaced as 404; the stored report is kept, matching how the clients
// already handle this case.
//
//	POST /api/reports
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentClaims(r)

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.ReportData.Validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		httpjson.Error(w, http.StatusForbidden, "Invalid or expired token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rep, err := h.Reports.Create(ctx, models.Report{
		Title:       sanitize.Text(req.ReportData.Title),
		Description: sanitize.Text(req.ReportData.Description),
		OwnerID:     ownerID,
		Location:    req.ReportData.Location,
		Photo:       req.ReportData.Photo,
		Tag:         req.ReportData.Tag,
	})
	if err != nil {
		h.Log.Error("report insert failed", zap.Error(err), zap.String("owner_id", ownerID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	if claims.Kind == models.KindOrg {
		err = h.Orgs.PushReport(ctx, ownerID, rep.ID)
	} else {
		err = h.Users.PushReport(ctx, ownerID, rep.ID)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if claims.Kind == models.KindOrg {
				httpjson.Error(w, http.StatusNotFound, "Organization not found")
			} else {
				httpjson.Error(w, http.StatusNotFound, "User not found")
			}
			return
		}
		h.Log.Error("owner back-reference failed", zap.Error(err),
			zap.String("owner_id", ownerID.Hex()),
			zap.String("report_id", rep.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Respond(w, http.StatusCreated, map[string]any{
		"message": "Report created successfully",
		"report":  rep,
	})
}
