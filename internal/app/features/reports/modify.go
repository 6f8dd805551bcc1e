package reports

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/policy/reportpolicy"
	reportstore "github.com/civicwatch/civicwatch/internal/app/store/reports"
	"github.com/civicwatch/civicwatch/internal/app/system/auth"
	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/app/system/sanitize"
	"github.com/civicwatch/civicwatch/internal/app/system/timeouts"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// PatchRequest carries a partial report update. Nil fields are left
// unchanged. It is shared with the organization moderation routes, which
// apply the same merge without the ownership check.
type PatchRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Location    *models.GeoPoint `json:"location"`
	Photo       *string          `json:"photo"`
	Tag         *string          `json:"tag"`
	Status      *string          `json:"status"`
}

// Validate rejects empty required fields and out-of-enum tag or status
// values. A nil field is always valid.
func (p PatchRequest) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return errors.New("title cannot be empty")
	}
	if p.Description != nil && *p.Description == "" {
		return errors.New("description cannot be empty")
	}
	if p.Tag != nil && !models.IsValidTag(*p.Tag) {
		return errors.New("must be a valid tag")
	}
	if p.Status != nil && !models.IsValidReportStatus(*p.Status) {
		return errors.New("must be a valid status")
	}
	return nil
}

// ToPatch converts the validated request into the store's patch form,
// sanitizing free text.
func (p PatchRequest) ToPatch() reportstore.Patch {
	patch := reportstore.Patch{
		Location: p.Location,
		Photo:    p.Photo,
		Tag:      p.Tag,
		Status:   p.Status,
	}
	if p.Title != nil {
		t := sanitize.Text(*p.Title)
		patch.Title = &t
	}
	if p.Description != nil {
		d := sanitize.Text(*p.Description)
		patch.Description = &d
	}
	return patch
}

// HandleUpdate merges a partial update into a report. Allowed for the owning
// account and for any organization.
//
//	PATCH /api/reports/{reportId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentClaims(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "reportId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	var req PatchRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rep, err := h.Reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Report not found")
			return
		}
		h.Log.Error("report lookup failed", zap.Error(err), zap.String("report_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !reportpolicy.CanEdit(claims, rep.OwnerID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied")
		return
	}

	updated, err := h.Reports.Update(ctx, id, req.ToPatch())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Report not found")
			return
		}
		h.Log.Error("report update failed", zap.Error(err), zap.String("report_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message": "Report updated successfully",
		"report":  updated,
	})
}

// HandleDelete permanently removes a report. Allowed for the owning account
// and for any organization.
//
//	DELETE /api/reports/{reportId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentClaims(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "reportId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rep, err := h.Reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "Report not found")
			return
		}
		h.Log.Error("report lookup failed", zap.Error(err), zap.String("report_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !reportpolicy.CanDelete(claims, rep.OwnerID) {
		httpjson.Error(w, http.StatusForbidden, "Access denied")
		return
	}

	if _, err := h.Reports.Delete(ctx, id); err != nil {
		h.Log.Error("report delete failed", zap.Error(err), zap.String("report_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{
		"message": "Report deleted successfully",
	})
}
