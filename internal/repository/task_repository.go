package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"planit/internal/model"
)

// TaskFilter narrows a user's task list. Zero values mean "no filter";
// filters compose conjunctively.
type TaskFilter struct {
	Status     string // "completed", "pending", anything else lists all
	Priority   string
	CategoryID *uint
	Search     string // case-insensitive substring match on title
}

// TaskStats are aggregate counts over a user's full task set, never the
// filtered view.
type TaskStats struct {
	Total     int64
	Pending   int64
	Completed int64
}

// taskOrder sorts high priority first (unknown values rank with medium),
// then earliest due date with undated tasks last, then newest first as
// the stable tiebreak.
const taskOrder = "CASE priority WHEN 'high' THEN 1 WHEN 'low' THEN 3 ELSE 2 END ASC, " +
	"due_date IS NULL ASC, due_date ASC, created_at DESC, id DESC"

// likeEscaper neutralizes LIKE metacharacters so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// TaskRepository handles CRUD and queries for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// List returns the user's tasks matching the filter, ordered for the
// task-list view.
func (r *TaskRepository) List(ctx context.Context, userID uint, f TaskFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)

	switch f.Status {
	case "completed":
		q = q.Where("is_completed = ?", true)
	case "pending":
		q = q.Where("is_completed = ?", false)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(f.Search)) + "%"
		q = q.Where("LOWER(title) LIKE ? ESCAPE '\\'", pattern)
	}

	var tasks []model.Task
	if err := q.Preload("Category").Order(taskOrder).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Stats counts the user's tasks regardless of any list filter.
func (r *TaskRepository) Stats(ctx context.Context, userID uint) (TaskStats, error) {
	var stats TaskStats
	db := r.db.WithContext(ctx).Model(&model.Task{})
	if err := db.Where("user_id = ?", userID).Count(&stats.Total).Error; err != nil {
		return stats, fmt.Errorf("count tasks: %w", err)
	}
	db = r.db.WithContext(ctx).Model(&model.Task{})
	if err := db.Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&stats.Completed).Error; err != nil {
		return stats, fmt.Errorf("count completed tasks: %w", err)
	}
	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteCascade removes a task together with its notes, recurrence,
// shares, and notifications in one transaction.
func (r *TaskRepository) DeleteCascade(ctx context.Context, userID, taskID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskNote{}).Error; err != nil {
			return fmt.Errorf("delete task notes: %w", err)
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.RecurringTask{}).Error; err != nil {
			return fmt.Errorf("delete recurrence: %w", err)
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.SharedTaskList{}).Error; err != nil {
			return fmt.Errorf("delete shares: %w", err)
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.Notification{}).Error; err != nil {
			return fmt.Errorf("delete notifications: %w", err)
		}
		if err := tx.Where("user_id = ? AND id = ?", userID, taskID).
			Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
	return err
}
