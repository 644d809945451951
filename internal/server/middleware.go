package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "planit_session"
	flashCookie   = "planit_flash"
	ctxUserID     = "planit_user_id"
)

// requireSession guards the browser-facing routes. Missing or invalid
// session cookies bounce to the login page without leaking anything
// about the requested resource.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		userID, err := s.tokens.Verify(raw)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if _, err := s.auth.UserByID(c.Request.Context(), userID); err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// requireBearer guards the REST routes via an Authorization header.
func (s *Server) requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		userID, err := s.tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if _, err := s.auth.UserByID(c.Request.Context(), userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint(ctxUserID)
}

// establishSession issues a token and stores it in the session cookie.
// The same token works as a bearer token for the REST surface.
func (s *Server) establishSession(c *gin.Context, userID uint) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return "", err
	}
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
	return token, nil
}

func (s *Server) clearSession(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// setFlash leaves a one-shot message for the rendering layer to display
// on the next page load.
func (s *Server) setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(message), 10, "/", "", false, false)
}
