package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/session"
)

const sessionCookie = "portfolio_session"

// view returns the visitor's session view, issuing a cookie for new ones.
func (d *Deps) view(c *gin.Context) (*session.View, error) {
	id, _ := c.Cookie(sessionCookie)
	v, err := d.Sessions.Acquire(id)
	if err != nil {
		return nil, err
	}
	if v.ID != id {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, v.ID, 0, "/", "", d.SecureCookies, true)
	}
	return v, nil
}
