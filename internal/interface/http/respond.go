package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-accounts/internal/application"
	"github.com/oksasatya/user-accounts/internal/domain/entity"
	"github.com/oksasatya/user-accounts/pkg/helpers"
	"github.com/oksasatya/user-accounts/pkg/response"
)

// userResponse is the public view of a user; the password hash never leaves the service.
type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(u *entity.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func statusFor(k userapp.Kind) int {
	switch k {
	case userapp.KindNotFound:
		return http.StatusNotFound
	case userapp.KindConflict:
		return http.StatusConflict
	case userapp.KindInvalidRequest:
		return http.StatusBadRequest
	case userapp.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the envelope for err. Domain errors carry their {code, message};
// anything unclassified is logged and hidden behind a 500.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	var verr *userapp.ValidationError
	if errors.As(err, &verr) {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Details)
		return
	}
	if e, ok := userapp.AsError(err); ok {
		response.Error[any](c, statusFor(e.Kind), e.Message, response.ErrorCode{Code: e.Code, Message: e.Message})
		return
	}
	helpers.LogError(logger, "request failed", err, logrus.Fields{
		"path":       c.FullPath(),
		"request_id": c.GetString("request_id"),
	})
	response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
}
