package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/http/sessioncookie"
	"github.com/GrupoGenezisTUP2024/E-commerce-Frontend/internal/session"
)

// SessionCfg holds what the session middleware needs: the signed-cookie
// storage codec and the auth service the store logs in against.
type SessionCfg struct {
	Codec *sessioncookie.Codec
	Auth  session.AuthService
}

// SessionMiddleware hydrates a session store from the request's cookie pair
// and provides it to the rest of the chain. Corrupt persisted state is
// cleared during hydration; the request proceeds with an empty session.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := session.NewStore(cfg.Auth, cfg.Codec.Storage(c))
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), store))
		c.Next()
	}
}

// SessionStore returns the store provided by SessionMiddleware. Routes
// registered without the middleware get an error, never an empty session.
func SessionStore(c *gin.Context) (*session.Store, error) {
	return session.FromContext(c.Request.Context())
}

// CurrentUser retrieves the authenticated user, or false when the request
// carries no session.
func CurrentUser(c *gin.Context) (session.User, bool) {
	store, err := SessionStore(c)
	if err != nil {
		return session.User{}, false
	}
	return store.Current()
}
