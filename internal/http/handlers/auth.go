package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/api"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/flash"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/middleware"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/render"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/validation"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/shared/apperr"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/pkg/view"
)

// normalizeReturnTo validates and sanitizes the return_to parameter.
// Open redirect protection: only relative paths are accepted.
func normalizeReturnTo(s string) string {
	if s == "" {
		return ""
	}
	if s[0] != '/' {
		return ""
	}
	// protocol-relative like "//evil.com"
	if len(s) >= 2 && s[0:2] == "//" {
		return ""
	}
	if containsScheme(s) {
		return ""
	}
	return s
}

func containsScheme(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if s[i] == ':' && s[i+1] == '/' && s[i+2] == '/' {
			return true
		}
	}
	return false
}

// AuthHandlers contains handlers for the login/register/logout routes. All
// credential checks happen in the external auth service; the handlers only
// move session state around.
type AuthHandlers struct {
	flash *flash.Codec
}

func NewAuthHandlers(flashCodec *flash.Codec) *AuthHandlers {
	return &AuthHandlers{flash: flashCodec}
}

type loginInput struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// LoginGet renders the login page.
func (h *AuthHandlers) LoginGet(c *gin.Context) {
	returnTo := normalizeReturnTo(c.Query("return_to"))
	render.Page(c, http.StatusOK, "login", "Iniciar sesión", view.LoginPage{
		Form:     view.LoginForm{},
		ReturnTo: returnTo,
	})
}

// LoginPost authenticates through the session store.
func (h *AuthHandlers) LoginPost(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		render.Page(c, http.StatusBadRequest, "login", "Iniciar sesión", view.LoginPage{
			Form:     view.LoginForm{Email: in.Email},
			Errors:   errs,
			ReturnTo: returnTo,
		})
		return
	}

	store, err := middleware.SessionStore(c)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	err = store.Login(c.Request.Context(), api.Credentials{Email: in.Email, Password: in.Password})
	if err != nil {
		// Credentials or response-shape problem: page-level message, keep
		// whatever session existed before.
		render.Page(c, http.StatusUnauthorized, "login", "Iniciar sesión", view.LoginPage{
			Form:     view.LoginForm{Email: in.Email},
			PageErr:  "Correo electrónico o contraseña incorrectos.",
			ReturnTo: returnTo,
		})
		return
	}

	dest := "/admin/orders"
	if returnTo != "" {
		dest = returnTo
	}
	render.RedirectWithFlash(c, h.flash, dest, view.FlashSuccess, "Sesión iniciada.")
}

type registerInput struct {
	FirstName string `form:"firstname" binding:"required"`
	LastName  string `form:"lastname" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
	Password  string `form:"password" binding:"required,min=6"`
}

// RegisterGet renders the registration page.
func (h *AuthHandlers) RegisterGet(c *gin.Context) {
	render.Page(c, http.StatusOK, "register", "Crear cuenta", view.RegisterPage{})
}

// RegisterPost forwards the registration to the auth service. Session state
// is untouched; the user signs in afterwards.
func (h *AuthHandlers) RegisterPost(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBind(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		render.Page(c, http.StatusBadRequest, "register", "Crear cuenta", view.RegisterPage{
			Form:   view.RegisterForm{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email},
			Errors: errs,
		})
		return
	}

	store, err := middleware.SessionStore(c)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	err = store.Register(c.Request.Context(), api.RegisterRequest{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  in.Password,
	})
	if err != nil {
		render.Page(c, http.StatusBadGateway, "register", "Crear cuenta", view.RegisterPage{
			Form:    view.RegisterForm{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email},
			PageErr: "No se pudo completar el registro. Intente de nuevo.",
		})
		return
	}

	render.RedirectWithFlash(c, h.flash, "/login", view.FlashSuccess, "Cuenta creada. Puede iniciar sesión.")
}

// LogoutPost clears the session. Idempotent: logging out twice is fine.
func (h *AuthHandlers) LogoutPost(c *gin.Context) {
	if store, err := middleware.SessionStore(c); err == nil {
		store.Logout()
	}
	render.RedirectWithFlash(c, h.flash, "/login", view.FlashInfo, "Sesión cerrada.")
}
