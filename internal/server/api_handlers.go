package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planit/internal/service"
)

// REST surface. Same services, same ownership scoping as the web
// handlers; only the representations differ.

func (s *Server) apiTaskList(c *gin.Context) {
	filter, _ := taskFilterFromQuery(c)
	tasks, _, err := s.tasks.List(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponses(tasks))
}

func (s *Server) apiTaskCompleted(c *gin.Context) {
	s.apiTaskByStatus(c, "completed")
}

func (s *Server) apiTaskPending(c *gin.Context) {
	s.apiTaskByStatus(c, "pending")
}

func (s *Server) apiTaskByStatus(c *gin.Context, status string) {
	filter, _ := taskFilterFromQuery(c)
	filter.Status = status
	tasks, _, err := s.tasks.List(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponses(tasks))
}

func (s *Server) apiTaskGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.apiError(c, service.ErrNotFound)
		return
	}
	task, err := s.tasks.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(*task))
}

func (s *Server) apiTaskCreate(c *gin.Context) {
	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.apiError(c, err)
		return
	}
	task, err := s.tasks.Create(c.Request.Context(), currentUserID(c), service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CategoryID:  req.Category,
	})
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(*task))
}

func (s *Server) apiTaskUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.apiError(c, service.ErrNotFound)
		return
	}
	var req taskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.apiError(c, err)
		return
	}
	task, err := s.tasks.Update(c.Request.Context(), currentUserID(c), id, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CategoryID:  req.Category,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(*task))
}

func (s *Server) apiTaskPatch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.apiError(c, service.ErrNotFound)
		return
	}
	var req taskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.apiError(c, err)
		return
	}
	task, err := s.tasks.Patch(c.Request.Context(), currentUserID(c), id, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CategoryID:  req.Category,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(*task))
}

func (s *Server) apiTaskDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.apiError(c, service.ErrNotFound)
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		s.apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) apiTaskToggle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.apiError(c, service.ErrNotFound)
		return
	}
	task, err := s.tasks.Toggle(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(*task))
}

func (s *Server) apiCategoryList(c *gin.Context) {
	categories, err := s.categories.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponses(categories))
}

func (s *Server) apiCategoryGet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.apiError(c, service.ErrNotFound)
		return
	}
	category, err := s.categories.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(*category))
}

func (s *Server) apiCategoryCreate(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.apiError(c, err)
		return
	}
	category, err := s.categories.Create(c.Request.Context(), currentUserID(c), req.Name)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCategoryResponse(*category))
}

func (s *Server) apiCategoryUpdate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.apiError(c, service.ErrNotFound)
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.apiError(c, err)
		return
	}
	category, err := s.categories.Update(c.Request.Context(), currentUserID(c), id, req.Name)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponse(*category))
}

func (s *Server) apiCategoryDelete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.apiError(c, service.ErrNotFound)
		return
	}
	if err := s.categories.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		s.apiError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
