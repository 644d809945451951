package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"planit/internal/repository"
	"planit/internal/service"
)

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// taskFilterFromQuery reads the list filters. The raw category value is
// returned separately so the view can echo it back verbatim.
func taskFilterFromQuery(c *gin.Context) (repository.TaskFilter, string) {
	f := repository.TaskFilter{
		Status:   c.DefaultQuery("status", "all"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}
	rawCategory := c.Query("category")
	if rawCategory != "" {
		// A value that is not a category id matches nothing rather than
		// silently widening to the unfiltered list. No row has id 0.
		categoryID := uint(0)
		if id, err := strconv.ParseUint(rawCategory, 10, 64); err == nil {
			categoryID = uint(id)
		}
		f.CategoryID = &categoryID
	}
	return f, rawCategory
}

func (s *Server) handleTaskList(c *gin.Context) {
	userID := currentUserID(c)
	filter, rawCategory := taskFilterFromQuery(c)

	tasks, stats, err := s.tasks.List(c.Request.Context(), userID, filter)
	if err != nil {
		s.webError(c, err)
		return
	}
	categories, err := s.categories.List(c.Request.Context(), userID)
	if err != nil {
		s.webError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskListView(tasks, categories, filter, rawCategory, stats))
}

func (s *Server) handleTaskDetail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.webError(c, service.ErrNotFound)
		return
	}
	task, err := s.tasks.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.webError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(*task))
}

func (s *Server) handleTaskCreate(c *gin.Context) {
	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		s.webError(c, err)
		return
	}
	task, err := s.tasks.Create(c.Request.Context(), currentUserID(c), form.toInput())
	if err != nil {
		s.webError(c, err)
		return
	}
	s.setFlash(c, fmt.Sprintf("Task %q created successfully!", task.Title))
	c.Redirect(http.StatusSeeOther, "/tasks")
}

func (s *Server) handleTaskUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.webError(c, service.ErrNotFound)
		return
	}
	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		s.webError(c, err)
		return
	}
	task, err := s.tasks.Update(c.Request.Context(), currentUserID(c), id, form.toInput())
	if err != nil {
		s.webError(c, err)
		return
	}
	s.setFlash(c, fmt.Sprintf("Task %q updated successfully!", task.Title))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/tasks/%d", task.ID))
}

func (s *Server) handleTaskDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.webError(c, service.ErrNotFound)
		return
	}
	userID := currentUserID(c)
	task, err := s.tasks.Get(c.Request.Context(), userID, id)
	if err != nil {
		s.webError(c, err)
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), userID, id); err != nil {
		s.webError(c, err)
		return
	}
	s.setFlash(c, fmt.Sprintf("Task %q deleted successfully!", task.Title))
	c.Redirect(http.StatusSeeOther, "/tasks")
}

func (s *Server) handleTaskToggle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.webError(c, service.ErrNotFound)
		return
	}
	task, err := s.tasks.Toggle(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.webError(c, err)
		return
	}

	status := "marked as pending"
	if task.IsCompleted {
		status = "completed"
	}
	s.setFlash(c, fmt.Sprintf("Task %q %s!", task.Title, status))

	// Back to where the toggle was clicked.
	target := c.Request.Referer()
	if target == "" {
		target = "/tasks"
	}
	c.Redirect(http.StatusSeeOther, target)
}
