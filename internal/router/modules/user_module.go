package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/user-accounts/internal/interface/http"
	"github.com/oksasatya/user-accounts/internal/interface/middleware"
)

// UserModule wires user HTTP handlers into routes under the given group (usually /api).
// Public: POST /users
// Protected: GET /users/:key/id, GET /users/:key/email, GET /users/search
// Protected, own record only: PATCH /users/:id, DELETE /users/:id, POST /users/:id/updatePassword
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     middleware.TokenParser
}

func NewUserModule(h *handlers.UserHandler, jwt middleware.TokenParser) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Create)

	auth := rg.Group("/users")
	auth.Use(middleware.JWTAuth(m.JWT))
	{
		if m.Handler.Searcher != nil {
			auth.GET("/search", m.Handler.Search)
		}
		auth.GET("/:key/id", m.Handler.GetByID)
		auth.GET("/:key/email", m.Handler.GetByEmail)

		self := middleware.RequireSelf("id")
		auth.PATCH("/:id", self, m.Handler.Update)
		auth.DELETE("/:id", self, m.Handler.Delete)
		auth.POST("/:id/updatePassword", self, m.Handler.UpdatePassword)
	}
}
