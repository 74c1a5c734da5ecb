package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-accounts/internal/application"
	"github.com/oksasatya/user-accounts/internal/domain/entity"
	"github.com/oksasatya/user-accounts/internal/infrastructure/search"
	"github.com/oksasatya/user-accounts/pkg/response"
	"github.com/oksasatya/user-accounts/pkg/validation"
)

// UserUseCase is the part of the user service the handlers drive.
type UserUseCase interface {
	FindUnique(ctx context.Context, key userapp.UniqueKey) (*entity.User, error)
	Create(ctx context.Context, in userapp.CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, id string, in userapp.UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id string, in userapp.UpdatePasswordInput) error
}

type UserSearcher interface {
	Search(ctx context.Context, q string, size int) ([]search.UserDoc, error)
}

type UserHandler struct {
	Users    UserUseCase
	Searcher UserSearcher
	Logger   *logrus.Logger
}

func NewUserHandler(users UserUseCase, searcher UserSearcher, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Searcher: searcher, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type updateUserRequest struct {
	Name  *string `json:"name" binding:"omitnil,username"`
	Email *string `json:"email" binding:"omitnil,email"`
}

type updatePasswordRequest struct {
	CurrentPassword    string `json:"current_password" binding:"required,pwd"`
	NewPassword        string `json:"new_password" binding:"required,pwd"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required,pwd"`
}

type idURI struct {
	ID string `uri:"id" json:"id" binding:"required,uuid4"`
}

type keyIDURI struct {
	Key string `uri:"key" json:"id" binding:"required,uuid4"`
}

type keyEmailURI struct {
	Key string `uri:"key" json:"email" binding:"required,email"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Create(c.Request.Context(), userapp.CreateUserInput(req))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newUserResponse(u), "user created", nil)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	var uri keyIDURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid path", validation.ToDetails(err))
		return
	}
	h.find(c, userapp.ByID(uri.Key))
}

func (h *UserHandler) GetByEmail(c *gin.Context) {
	var uri keyEmailURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid path", validation.ToDetails(err))
		return
	}
	h.find(c, userapp.ByEmail(uri.Key))
}

func (h *UserHandler) find(c *gin.Context, key userapp.UniqueKey) {
	u, err := h.Users.FindUnique(c.Request.Context(), key)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newUserResponse(u), "user", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid path", validation.ToDetails(err))
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Update(c.Request.Context(), uri.ID, userapp.UpdateUserInput(req))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newUserResponse(u), "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid path", validation.ToDetails(err))
		return
	}
	if err := h.Users.Delete(c.Request.Context(), uri.ID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	var uri idURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid path", validation.ToDetails(err))
		return
	}
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Users.UpdatePassword(c.Request.Context(), uri.ID, userapp.UpdatePasswordInput(req)); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

// Search queries the user directory: GET /users/search?q=al&size=10
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	docs, err := h.Searcher.Search(c.Request.Context(), q, size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "search results", map[string]any{"count": len(docs)})
}
