package reports

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/system/auth"
	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/app/system/timeouts"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// HandleList returns every report with its owner annotation. Public; an empty
// store yields an empty array, not an error.
//
//	GET /api/reports
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reps, err := h.Reports.List(ctx)
	if err != nil {
		h.Log.Error("report list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	views, err := h.annotateAll(ctx, reps)
	if err != nil {
		h.Log.Error("owner resolution failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, views)
}

// userReportView is a report annotated with its owning user's identity.
type userReportView struct {
	models.Report
	User userRef `json:"user"`
}

type userRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// HandleListUsers returns only user-owned reports, with the username resolved
// in one batch lookup. Public.
//
//	GET /api/reports/users
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	names, err := h.Owners.UserNames(ctx)
	if err != nil {
		h.Log.Error("username batch failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	ids := make([]primitive.ObjectID, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}

	reps, err := h.Reports.ListByOwners(ctx, ids)
	if err != nil {
		h.Log.Error("report list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	views := make([]userReportView, 0, len(reps))
	for _, rep := range reps {
		name, ok := names[rep.OwnerID]
		if !ok {
			name = "unknown"
		}
		views = append(views, userReportView{
			Report: rep,
			User:   userRef{ID: rep.OwnerID.Hex(), Username: name},
		})
	}
	httpjson.Respond(w, http.StatusOK, views)
}

// HandleMine returns the caller's reports, newest first.
//
//	GET /api/reports/mine
func (h *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentClaims(r)

	ownerID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		httpjson.Error(w, http.StatusForbidden, "Invalid or expired token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reps, err := h.Reports.ListByOwner(ctx, ownerID)
	if err != nil {
		h.Log.Error("report list failed", zap.Error(err), zap.String("owner_id", ownerID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, reps)
}

// HandleGet returns a single report with its owner annotation.
//
//	GET /api/reports/{reportId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "reportId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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

	owner, err := h.Owners.Resolve(ctx, rep.OwnerID)
	if err != nil {
		h.Log.Error("owner resolution failed", zap.Error(err), zap.String("report_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, annotate(*rep, owner))
}
