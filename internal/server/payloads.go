package server

import (
	"time"

	"planit/internal/model"
	"planit/internal/repository"
	"planit/internal/service"
)

// --- requests ---

type signupForm struct {
	Username        string `form:"username" json:"username"`
	Password        string `form:"password" json:"password"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm"`
}

type loginForm struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// taskForm is the browser form. The checkbox arrives as an arbitrary
// non-empty string when ticked, so IsCompleted stays a string here.
type taskForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Priority    string `form:"priority"`
	DueDate     string `form:"due_date"`
	Category    *uint  `form:"category"`
	IsCompleted string `form:"is_completed"`
}

func (f taskForm) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		Priority:    f.Priority,
		DueDate:     f.DueDate,
		CategoryID:  f.Category,
		IsCompleted: f.IsCompleted != "",
	}
}

type categoryForm struct {
	Name string `form:"name" json:"name"`
}

type taskCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date" binding:"omitempty,dateonly"`
	Category    *uint  `json:"category"`
}

type taskUpdateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date" binding:"omitempty,dateonly"`
	Category    *uint  `json:"category"`
	IsCompleted bool   `json:"is_completed"`
}

// taskPatchRequest distinguishes "absent" (nil) from "set". A category of
// zero clears the reference; an empty due_date clears the date.
type taskPatchRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitnil,oneof=low medium high"`
	DueDate     *string `json:"due_date" binding:"omitnil,omitempty,dateonly"`
	Category    *uint   `json:"category"`
	IsCompleted *bool   `json:"is_completed"`
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- responses ---

type taskResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	IsCompleted  bool      `json:"is_completed"`
	Priority     string    `json:"priority"`
	DueDate      *string   `json:"due_date"`
	Category     *uint     `json:"category"`
	CategoryName *string   `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newTaskResponse(t model.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		Priority:    t.Priority,
		Category:    t.CategoryID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(service.DateLayout)
		resp.DueDate = &due
	}
	if t.Category != nil {
		resp.CategoryName = &t.Category.Name
	}
	return resp
}

func newTaskResponses(tasks []model.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = newTaskResponse(t)
	}
	return out
}

type categoryResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func newCategoryResponses(categories []model.Category) []categoryResponse {
	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = newCategoryResponse(c)
	}
	return out
}

// taskListView is the view model the rendering layer feeds into the task
// list template: the filtered tasks, the user's categories, the echoed
// filter values, and counts over the unfiltered set.
type taskListView struct {
	Tasks          []taskResponse     `json:"tasks"`
	Categories     []categoryResponse `json:"categories"`
	Status         string             `json:"status"`
	Priority       string             `json:"priority"`
	Category       string             `json:"category"`
	Search         string             `json:"search"`
	TotalTasks     int64              `json:"total_tasks"`
	PendingTasks   int64              `json:"pending_tasks"`
	CompletedTasks int64              `json:"completed_tasks"`
}

func newTaskListView(tasks []model.Task, categories []model.Category,
	f repository.TaskFilter, rawCategory string, stats repository.TaskStats) taskListView {
	return taskListView{
		Tasks:          newTaskResponses(tasks),
		Categories:     newCategoryResponses(categories),
		Status:         f.Status,
		Priority:       f.Priority,
		Category:       rawCategory,
		Search:         f.Search,
		TotalTasks:     stats.Total,
		PendingTasks:   stats.Pending,
		CompletedTasks: stats.Completed,
	}
}
