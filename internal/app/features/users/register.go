package users

import (
	"context"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"

	userstore "github.com/civicwatch/civicwatch/internal/app/store/users"
	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/app/system/password"
	"github.com/civicwatch/civicwatch/internal/app/system/timeouts"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

type registerRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone"`
	SharePosition bool   `json:"share_position"`
}

func (p registerRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// HandleRegister creates a new user account.
//
//	POST /api/users
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := password.Validate(req.Password); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	taken, err := h.Users.Exists(ctx, req.Username, req.Email)
	if err != nil {
		h.Log.Error("user existence check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if taken {
		httpjson.Error(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	_, err = h.Users.Create(ctx, models.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  hash,
		Phone:         req.Phone,
		SharePosition: req.SharePosition,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicate) {
			httpjson.Error(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.Log.Error("user insert failed", zap.Error(err), zap.String("email", req.Email))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Respond(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}
