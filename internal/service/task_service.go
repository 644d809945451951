package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"planit/internal/model"
	"planit/internal/repository"
)

// DateLayout is the calendar-date format accepted for due dates.
const DateLayout = "2006-01-02"

// TaskInput carries every mutable task field for create and wholesale
// update. IsCompleted is ignored on create.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     string // DateLayout, empty for none
	CategoryID  *uint
	IsCompleted bool
}

// TaskPatch is a partial update. Nil fields are left untouched. A
// CategoryID of zero clears the category.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *string
	CategoryID  *uint
	IsCompleted *bool
}

// TaskService wraps task business logic. Every method takes the calling
// user's id explicitly and never looks outside that user's rows.
type TaskService struct {
	tasks      *repository.TaskRepository
	categories *repository.CategoryRepository
}

func NewTaskService(tasks *repository.TaskRepository, categories *repository.CategoryRepository) *TaskService {
	return &TaskService{tasks: tasks, categories: categories}
}

// List returns the user's tasks matching the filter plus aggregate counts
// over the full, unfiltered set.
func (s *TaskService) List(ctx context.Context, userID uint, f repository.TaskFilter) ([]model.Task, repository.TaskStats, error) {
	tasks, err := s.tasks.List(ctx, userID, f)
	if err != nil {
		return nil, repository.TaskStats{}, err
	}
	stats, err := s.tasks.Stats(ctx, userID)
	if err != nil {
		return nil, repository.TaskStats{}, err
	}
	return tasks, stats, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Create builds a new pending task for the user. Absent or unknown
// priorities fall back to medium; a category reference must resolve to
// one of the user's own categories.
func (s *TaskService) Create(ctx context.Context, userID uint, in TaskInput) (*model.Task, error) {
	title, dueDate, categoryID, verr := s.normalize(ctx, userID, &in)
	if verr.Any() {
		return nil, verr
	}

	task := model.Task{
		UserID:      userID,
		CategoryID:  categoryID,
		Title:       title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     dueDate,
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update replaces every mutable field from the submitted representation.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, in TaskInput) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	title, dueDate, categoryID, verr := s.normalize(ctx, userID, &in)
	if verr.Any() {
		return nil, verr
	}

	task.Title = title
	task.Description = in.Description
	task.Priority = in.Priority
	task.DueDate = dueDate
	task.CategoryID = categoryID
	task.Category = nil
	task.IsCompleted = in.IsCompleted
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, taskID)
}

// Patch applies only the fields the caller supplied, leaving the rest of
// the task untouched.
func (s *TaskService) Patch(ctx context.Context, userID, taskID uint, p TaskPatch) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	verr := NewValidationError()
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			verr.Add("title", "title is required")
		} else {
			task.Title = title
		}
	}
	if p.Description != nil {
		task.Description = *p.Description
	}
	if p.Priority != nil {
		if !model.ValidPriority(*p.Priority) {
			verr.Add("priority", "priority must be low, medium, or high")
		} else {
			task.Priority = *p.Priority
		}
	}
	if p.DueDate != nil {
		if *p.DueDate == "" {
			task.DueDate = nil
		} else if due, err := time.Parse(DateLayout, *p.DueDate); err != nil {
			verr.Add("due_date", "date must be formatted YYYY-MM-DD")
		} else {
			task.DueDate = &due
		}
	}
	if p.CategoryID != nil {
		if *p.CategoryID == 0 {
			task.CategoryID = nil
			task.Category = nil
		} else if _, err := s.ownedCategory(ctx, userID, *p.CategoryID); err != nil {
			verr.Add("category", "category not found")
		} else {
			task.CategoryID = p.CategoryID
			task.Category = nil
		}
	}
	if p.IsCompleted != nil {
		task.IsCompleted = *p.IsCompleted
	}

	if verr.Any() {
		return nil, verr
	}
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, taskID)
}

// Toggle flips the completion flag. It always flips; two calls cancel out.
func (s *TaskService) Toggle(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	task.IsCompleted = !task.IsCompleted
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task and everything hanging off it.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	if _, err := s.Get(ctx, userID, taskID); err != nil {
		return err
	}
	return s.tasks.DeleteCascade(ctx, userID, taskID)
}

func (s *TaskService) normalize(ctx context.Context, userID uint, in *TaskInput) (string, *time.Time, *uint, *ValidationError) {
	verr := NewValidationError()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		verr.Add("title", "title is required")
	}

	if !model.ValidPriority(in.Priority) {
		in.Priority = model.PriorityMedium
	}

	var dueDate *time.Time
	if in.DueDate != "" {
		due, err := time.Parse(DateLayout, in.DueDate)
		if err != nil {
			verr.Add("due_date", "date must be formatted YYYY-MM-DD")
		} else {
			dueDate = &due
		}
	}

	var categoryID *uint
	if in.CategoryID != nil && *in.CategoryID != 0 {
		if _, err := s.ownedCategory(ctx, userID, *in.CategoryID); err != nil {
			verr.Add("category", "category not found")
		} else {
			categoryID = in.CategoryID
		}
	}

	return title, dueDate, categoryID, verr
}

func (s *TaskService) ownedCategory(ctx context.Context, userID, categoryID uint) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, userID, categoryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}
