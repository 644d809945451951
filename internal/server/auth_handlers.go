package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"planit/internal/service"
)

// handleSignup registers a new account, seeds its default categories, and
// logs the user straight in. Already-authenticated callers are sent to
// their task list untouched.
func (s *Server) handleSignup(c *gin.Context) {
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if _, err := s.tokens.Verify(raw); err == nil {
			c.Redirect(http.StatusSeeOther, "/tasks")
			return
		}
	}

	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		s.webError(c, err)
		return
	}

	user, err := s.auth.Register(c.Request.Context(), service.RegisterInput{
		Username:        form.Username,
		Password:        form.Password,
		PasswordConfirm: form.PasswordConfirm,
	})
	if err != nil {
		s.webError(c, err)
		return
	}

	if _, err := s.establishSession(c, user.ID); err != nil {
		s.webError(c, err)
		return
	}
	s.setFlash(c, fmt.Sprintf("Welcome, %s! Your account has been created.", user.Username))
	c.Redirect(http.StatusSeeOther, "/tasks")
}

// handleLogin verifies credentials, sets the session cookie, and returns
// the token so API clients can use it as a bearer token.
func (s *Server) handleLogin(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		s.webError(c, err)
		return
	}

	user, err := s.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		s.webError(c, err)
		return
	}

	token, err := s.establishSession(c, user.ID)
	if err != nil {
		s.webError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "username": user.Username})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.clearSession(c)
	c.Redirect(http.StatusSeeOther, "/login")
}
