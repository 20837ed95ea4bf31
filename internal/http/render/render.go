package render

import (
	"github.com/gin-gonic/gin"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/middleware"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/session"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/pkg/view"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/templates"
)

// PageData is the envelope every page template receives: the common chrome
// (flash, signed-in user) plus the page's own view model in Data.
type PageData struct {
	Title string
	Flash *view.Flash
	User  *session.User
	Data  any
}

// Page renders a named page template with the request's flash and user.
func Page(c *gin.Context, status int, name, title string, data any) {
	var user *session.User
	if u, ok := middleware.CurrentUser(c); ok {
		user = &u
	}

	pd := PageData{
		Title: title,
		Flash: middleware.GetFlash(c),
		User:  user,
		Data:  data,
	}

	c.Writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := templates.Pages.ExecuteTemplate(c.Writer, name, pd); err != nil {
		_ = c.Error(err)
	}
}
