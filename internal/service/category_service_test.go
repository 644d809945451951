package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"planit/internal/model"
	"planit/internal/repository"
)

func newCategoryService(t *testing.T) (*gorm.DB, *CategoryService) {
	t.Helper()
	db := newTestDB(t)
	return db, NewCategoryService(repository.NewCategoryRepository(db))
}

func TestCategoryCreateDuplicateIsNoOp(t *testing.T) {
	db, svc := newCategoryService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")

	_, err := svc.Create(ctx, alice.ID, "Work")
	require.NoError(t, err)

	_, err = svc.Create(ctx, alice.ID, "Work")
	assert.ErrorIs(t, err, ErrDuplicateCategory)

	var count int64
	require.NoError(t, db.Model(&model.Category{}).
		Where("user_id = ? AND name = ?", alice.ID, "Work").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCategoryNameIsPerUser(t *testing.T) {
	db, svc := newCategoryService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Create(ctx, alice.ID, "Work")
	require.NoError(t, err)

	// Another user may reuse the name.
	_, err = svc.Create(ctx, bob.ID, "Work")
	assert.NoError(t, err)
}

func TestCategoryCreateTrimsAndValidates(t *testing.T) {
	db, svc := newCategoryService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")

	category, err := svc.Create(ctx, alice.ID, "  Errands  ")
	require.NoError(t, err)
	assert.Equal(t, "Errands", category.Name)

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(ctx, alice.ID, name)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "name")
	}
}

func TestCategoryUpdateExcludesOwnRow(t *testing.T) {
	db, svc := newCategoryService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")

	work, err := svc.Create(ctx, alice.ID, "Work")
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice.ID, "Home")
	require.NoError(t, err)

	// Saving under its current name is not a duplicate.
	_, err = svc.Update(ctx, alice.ID, work.ID, "Work")
	assert.NoError(t, err)

	// Renaming onto a sibling is.
	_, err = svc.Update(ctx, alice.ID, work.ID, "Home")
	assert.ErrorIs(t, err, ErrDuplicateCategory)
}

func TestCategoryDeleteDetachesTasks(t *testing.T) {
	db, svc := newCategoryService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	work := createCategory(t, db, alice.ID, "Work")

	taskSvc := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewCategoryRepository(db),
	)
	var ids []uint
	for _, title := range []string{"one", "two", "three"} {
		task := mustCreateTask(t, taskSvc, alice.ID, TaskInput{Title: title, CategoryID: &work.ID})
		ids = append(ids, task.ID)
	}

	require.NoError(t, svc.Delete(ctx, alice.ID, work.ID))

	_, err := svc.Get(ctx, alice.ID, work.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The tasks survive, pointing at no category.
	for _, id := range ids {
		task, err := taskSvc.Get(ctx, alice.ID, id)
		require.NoError(t, err)
		assert.Nil(t, task.CategoryID)
	}
	var stillReferencing int64
	require.NoError(t, db.Model(&model.Task{}).
		Where("category_id = ?", work.ID).Count(&stillReferencing).Error)
	assert.Zero(t, stillReferencing)
}

func TestCategoryAccessIsOwnerScoped(t *testing.T) {
	db, svc := newCategoryService(t)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	mallory := createUser(t, db, "mallory")
	work := createCategory(t, db, alice.ID, "Work")

	_, err := svc.Get(ctx, mallory.ID, work.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Update(ctx, mallory.ID, work.ID, "Hijacked")
	assert.ErrorIs(t, err, ErrNotFound)
	err = svc.Delete(ctx, mallory.ID, work.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
