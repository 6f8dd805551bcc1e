package orgs

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

type orgView struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func viewOfOrg(org *models.Organization) orgView {
	return orgView{
		ID:          org.ID.Hex(),
		Username:    org.Username,
		Email:       org.Email,
		Phone:       org.Phone,
		Address:     org.Address,
		Description: org.Description,
	}
}

// HandleLogin verifies organization credentials and issues a session token.
// Organizations carry no suspension state, so there is no status gate here.
//
//	POST /api/orgs/session
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

	org, err := h.Orgs.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusBadRequest, "Invalid email or password")
			return
		}
		h.Log.Error("org lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	if err := password.Compare(org.PasswordHash, req.Password); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid email or password")
		return
	}

	token, err := h.Tokens.Issue(org.ID.Hex(), org.Email, org.Username, models.KindOrg)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("org_id", org.ID.Hex()))
		httpjson.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	h.Tokens.SetCookie(w, token)

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    viewOfOrg(org),
		"token":   token,
	})
}
