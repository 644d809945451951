package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"planit/internal/service"
)

func (s *Server) handleCategoryList(c *gin.Context) {
	categories, err := s.categories.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.webError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": newCategoryResponses(categories)})
}

// handleCategoryCreate adds a category. A duplicate name is a rejected
// no-op: the user gets a warning and goes back to the list.
func (s *Server) handleCategoryCreate(c *gin.Context) {
	var form categoryForm
	if err := c.ShouldBind(&form); err != nil {
		s.webError(c, err)
		return
	}
	category, err := s.categories.Create(c.Request.Context(), currentUserID(c), form.Name)
	if errors.Is(err, service.ErrDuplicateCategory) {
		s.setFlash(c, fmt.Sprintf("Category %q already exists!", form.Name))
		c.Redirect(http.StatusSeeOther, "/categories")
		return
	}
	if err != nil {
		s.webError(c, err)
		return
	}
	s.setFlash(c, fmt.Sprintf("Category %q created successfully!", category.Name))
	c.Redirect(http.StatusSeeOther, "/categories")
}

func (s *Server) handleCategoryUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.webError(c, service.ErrNotFound)
		return
	}
	var form categoryForm
	if err := c.ShouldBind(&form); err != nil {
		s.webError(c, err)
		return
	}
	category, err := s.categories.Update(c.Request.Context(), currentUserID(c), id, form.Name)
	if errors.Is(err, service.ErrDuplicateCategory) {
		s.setFlash(c, fmt.Sprintf("Category %q already exists!", form.Name))
		c.Redirect(http.StatusSeeOther, "/categories")
		return
	}
	if err != nil {
		s.webError(c, err)
		return
	}
	s.setFlash(c, fmt.Sprintf("Category %q updated successfully!", category.Name))
	c.Redirect(http.StatusSeeOther, "/categories")
}

func (s *Server) handleCategoryDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.webError(c, service.ErrNotFound)
		return
	}
	userID := currentUserID(c)
	category, err := s.categories.Get(c.Request.Context(), userID, id)
	if err != nil {
		s.webError(c, err)
		return
	}
	if err := s.categories.Delete(c.Request.Context(), userID, id); err != nil {
		s.webError(c, err)
		return
	}
	s.setFlash(c, fmt.Sprintf("Category %q deleted successfully!", category.Name))
	c.Redirect(http.StatusSeeOther, "/categories")
}
