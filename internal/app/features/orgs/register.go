package orgs

import (
	"context"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"

	orgstore "github.com/civicwatch/civicwatch/internal/app/store/orgs"
	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/app/system/normalize"
	"github.com/civicwatch/civicwatch/internal/app/system/password"
	"github.com/civicwatch/civicwatch/internal/app/system/sanitize"
	"github.com/civicwatch/civicwatch/internal/app/system/timeouts"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (p registerRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
		validation.Field(&p.Phone, validation.Required),
		validation.Field(&p.Address, validation.Required),
		validation.Field(&p.Description, validation.Required),
	)
}

// HandleRegister creates a new organization account.
//
//	POST /api/orgs
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
	phone := normalize.Phone(req.Phone)
	if err := validation.Validate(phone, is.Digit); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "phone must contain only digits")
		return
	}
	if err := password.Validate(req.Password); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	taken, err := h.Orgs.Exists(ctx, req.Username, req.Email)
	if err != nil {
		h.Log.Error("org existence check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if taken {
		httpjson.Error(w, http.StatusBadRequest, "Organization already exists")
		return
	}
	phoneTaken, err := h.Orgs.PhoneExists(ctx, phone)
	if err != nil {
		h.Log.Error("org phone check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if phoneTaken {
		httpjson.Error(w, http.StatusBadRequest, "An organization with this phone number already exists")
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	_, err = h.Orgs.Create(ctx, models.Organization{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        phone,
		Address:      sanitize.Text(req.Address),
		Description:  sanitize.Text(req.Description),
	})
	if err != nil {
		if errors.Is(err, orgstore.ErrDuplicatePhone) {
			httpjson.Error(w, http.StatusBadRequest, "An organization with this phone number already exists")
			return
		}
		if errors.Is(err, orgstore.ErrDuplicate) {
			httpjson.Error(w, http.StatusBadRequest, "Organization already exists")
			return
		}
		h.Log.Error("org insert failed", zap.Error(err), zap.String("email", req.Email))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	httpjson.Respond(w, http.StatusCreated, map[string]string{
		"message": "Organization registered successfully",
	})
}
