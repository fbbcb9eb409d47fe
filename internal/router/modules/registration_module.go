package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-registration/internal/interface/http"
)

// RegistrationModule serves the registration page.
// GET /register renders the empty form, POST /register validates it.
// GET / redirects to the form.
type RegistrationModule struct {
	Handler *handlers.RegistrationHandler
}

func NewRegistrationModule(h *handlers.RegistrationHandler) *RegistrationModule {
	return &RegistrationModule{Handler: h}
}

func (m *RegistrationModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/register")
	})
	rg.GET("/register", m.Handler.ShowForm)
	rg.POST("/register", m.Handler.Submit)
}
