package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"planit/internal/model"
	"planit/internal/repository"
	"planit/internal/service"
)

var seedCategoriesCmd = &cobra.Command{
	Use:   "seedcategories",
	Short: "Ensure every user has the default categories",
	RunE:  runSeedCategories,
}

var sampleTasksUser string

var sampleTasksCmd = &cobra.Command{
	Use:   "sampletasks",
	Short: "Add sample tasks for a user",
	RunE:  runSampleTasks,
}

func init() {
	sampleTasksCmd.Flags().StringVar(&sampleTasksUser, "user", "", "username to seed tasks for")
	_ = sampleTasksCmd.MarkFlagRequired("user")
}

func runSeedCategories(cmd *cobra.Command, args []string) error {
	_, db, err := openDB(true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)

	all, err := users.ListAll(ctx)
	if err != nil {
		return err
	}

	created := 0
	for _, user := range all {
		for _, name := range service.DefaultCategories {
			taken, err := categories.NameTaken(ctx, user.ID, name, 0)
			if err != nil {
				return err
			}
			if taken {
				continue
			}
			if err := categories.Create(ctx, &model.Category{UserID: user.ID, Name: name}); err != nil {
				return err
			}
			created++
		}
	}
	fmt.Printf("Successfully created %d default categories\n", created)
	return nil
}

type sampleTask struct {
	title       string
	description string
	priority    string
	daysFromNow int
	category    string
}

var sampleTasks = []sampleTask{
	{"Finish project brief", "Draft the project overview and share for review.", model.PriorityHigh, 1, "Work"},
	{"Prepare meeting agenda", "List discussion points and timeboxes for tomorrow's sync.", model.PriorityMedium, 2, "Work"},
	{"Book dentist appointment", "Schedule a 6-month checkup and cleaning.", model.PriorityMedium, 7, "Personal"},
	{"Weekly grocery run", "Plan meals and pick up essentials for the week.", model.PriorityLow, 3, "Home"},
	{"Refactor auth flow", "Clean up login and signup views for readability.", model.PriorityHigh, 4, "Work"},
	{"Backup family photos", "Upload recent photos to cloud storage.", model.PriorityLow, 10, "Personal"},
	{"Pay utility bills", "Settle electricity, water, and internet bills.", model.PriorityMedium, 5, "Home"},
	{"Plan weekend hike", "Choose a trail and invite friends.", model.PriorityLow, 9, "Personal"},
	{"Create test coverage report", "Run tests and summarize gaps for the team.", model.PriorityHigh, 2, "Work"},
	{"Deep clean kitchen", "Wipe appliances, organize pantry, and mop floors.", model.PriorityMedium, 6, "Home"},
}

func runSampleTasks(cmd *cobra.Command, args []string) error {
	_, db, err := openDB(true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	tasks := repository.NewTaskRepository(db)

	user, err := users.FindByUsername(ctx, sampleTasksUser)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("user %q not found", sampleTasksUser)
	}
	if err != nil {
		return err
	}

	for _, sample := range sampleTasks {
		category, err := categories.GetOrCreate(ctx, user.ID, sample.category)
		if err != nil {
			return err
		}
		due := time.Now().AddDate(0, 0, sample.daysFromNow)
		due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
		task := model.Task{
			UserID:      user.ID,
			CategoryID:  &category.ID,
			Title:       sample.title,
			Description: sample.description,
			Priority:    sample.priority,
			DueDate:     &due,
		}
		if err := tasks.Create(ctx, &task); err != nil {
			return err
		}
	}
	fmt.Printf("Created %d sample tasks for %s\n", len(sampleTasks), user.Username)
	return nil
}
