package orgs

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/features/reports"
	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/app/system/timeouts"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

// Moderation handlers. All routes here sit behind RequireOrg: any
// organization account may act on any user or report, with no ownership
// check.

// HandleListUsers returns every user account, password projected out.
//
//	GET /api/orgs
func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("user list failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	httpjson.Respond(w, http.StatusOK, users)
}

// HandleModerateReportUpdate applies a partial update to any report.
//
//	PATCH /api/orgs/reports/{reportId}
func (h *Handler) HandleModerateReportUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "reportId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	var req reports.PatchRequest
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

// HandleModerateReportDelete permanently removes any report.
//
//	DELETE /api/orgs/reports/{reportId}
func (h *Handler) HandleModerateReportDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "reportId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	n, err := h.Reports.Delete(ctx, id)
	if err != nil {
		h.Log.Error("report delete failed", zap.Error(err), zap.String("report_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "Report not found")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{
		"message": "Report deleted successfully",
	})
}

// HandleDeleteUser removes any user account, cascading to their reports.
//
//	DELETE /api/orgs/users/{userId}
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Reports.DeleteByOwner(ctx, id); err != nil {
		h.Log.Error("report cascade failed", zap.Error(err), zap.String("user_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.Log.Error("user delete failed", zap.Error(err), zap.String("user_id", id.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "User not found")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}

// HandleSuspendUser marks a user account suspended, blocking future logins.
// Already-issued tokens stay valid until they expire.
//
//	PATCH /api/orgs/users/{userId}/suspend
func (h *Handler) HandleSuspendUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, models.StatusSuspended, "User suspended successfully")
}

// HandleReactivateUser clears a user's suspension.
//
//	PATCH /api/orgs/users/{userId}/reactivate
func (h *Handler) HandleReactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, models.StatusActive, "User reactivated successfully")
}

func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request, status, message string) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("user status change failed", zap.Error(err),
			zap.String("user_id", id.Hex()), zap.String("status", status))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{"message": message})
}
