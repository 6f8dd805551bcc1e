package users

import (
	"context"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/civicwatch/civicwatch/internal/app/system/httpjson"
	"github.com/civicwatch/civicwatch/internal/app/system/password"
	"github.com/civicwatch/civicwatch/internal/app/system/timeouts"
	"github.com/civicwatch/civicwatch/internal/domain/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p loginRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

type userView struct {
	ID            string `json:"_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	SharePosition bool   `json:"share_position"`
	Status        string `json:"status"`
}

func viewOfUser(u *models.User) userView {
	return userView{
		ID:            u.ID.Hex(),
		Username:      u.Username,
		Email:         u.Email,
		Phone:         u.Phone,
		SharePosition: u.SharePosition,
		Status:        u.Status,
	}
}

// HandleLogin verifies credentials and issues a session token, returned both
// in the body and as the session cookie.
//
//	POST /api/users/session
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		h.Log.Error("user lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := password.Compare(u.PasswordHash, req.Password); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid email or password")
		return
	}
	// Suspension is only disclosed once the password checked out, so a wrong
	// password looks the same for every account.
	if u.Status == models.StatusSuspended {
		httpjson.Error(w, http.StatusForbidden, "Account suspended. Contact the administrator.")
		return
	}

	token, err := h.Tokens.Issue(u.ID.Hex(), u.Email, u.Username, models.KindUser)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.Tokens.SetCookie(w, token)

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    viewOfUser(u),
		"token":   token,
	})
}
