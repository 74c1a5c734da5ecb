package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-accounts/internal/application"
	"github.com/oksasatya/user-accounts/pkg/helpers"
	"github.com/oksasatya/user-accounts/pkg/response"
	"github.com/oksasatya/user-accounts/pkg/validation"
)

type AuthHandler struct {
	Auth    userapp.Authenticator
	Cookies *helpers.Manager
	Logger  *logrus.Logger
}

func NewAuthHandler(auth userapp.Authenticator, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetAccess(c, res.AccessToken, res.ExpiresAt)
	response.Success(c, http.StatusOK,
		loginResponse{AccessToken: res.AccessToken, User: newUserResponse(res.User)},
		"login successful",
		map[string]any{"access_expires_at": res.ExpiresAt},
	)
}
