package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/policy/accountpolicy"
	userstore "github.com/civicwatch/civicwatch/internal/app/store/users"
	"github.com/civicwatch/civicwatch/internal/app/system/auth"
	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/app/system/password"
	"github.com/civicwatch/civicwatch/internal/app/system/timeouts"
)

type updateRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	SharePosition *bool  `json:"share_position"`
}

func (p updateRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, is.Email),
	)
}

// HandleUpdate edits the caller's own account. Absent fields are left
// unchanged; a new password is strength-checked and re-hashed here.
//
//	PUT /api/users/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentClaims(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if !accountpolicy.CanModify(claims, id.Hex()) {
		httpjson.Error(w, http.StatusForbidden, "Access denied")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	upd := userstore.Update{
		Username:      req.Username,
		Email:         req.Email,
		Phone:         req.Phone,
		SharePosition: req.SharePosition,
	}
	if req.Password != "" {
		if err := password.Validate(req.Password); err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		hash, err := password.Hash(req.Password)
		if err != nil {
			h.Log.Error("password hash failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "Server error")
			return
		}
		upd.PasswordHash = hash
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.UpdateFields(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicate):
			httpjson.Error(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "User not found")
		default:
			h.Log.Error("user update failed", zap.Error(err), zap.String("user_id", id.Hex()))
			httpjson.Error(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{
		"message": "User updated successfully",
	})
}

// HandleDelete removes the caller's own account, cascading to their reports
// first so no orphaned documents remain.
//
//	DELETE /api/users/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.CurrentClaims(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	if !accountpolicy.CanModify(claims, id.Hex()) {
		httpjson.Error(w, http.StatusForbidden, "Access denied")
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
