package main

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"planit/internal/config"
	"planit/internal/repository"
)

var rootCmd = &cobra.Command{
	Use:   "planit",
	Short: "Personal task manager",
	Long: `planit is a personal task manager. Users organize tasks into
categories, filter and search their list, and track completion, over a
browser surface and a REST API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(createAdminCmd)
	rootCmd.AddCommand(seedCategoriesCmd)
	rootCmd.AddCommand(sampleTasksCmd)
}

// openDB loads configuration and connects to the database. A missing
// JWT_SECRET only matters for serve, so ignoreSecret relaxes it for the
// maintenance commands.
func openDB(ignoreSecret bool) (config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil && !ignoreSecret {
		return cfg, nil, err
	}
	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, db, nil
}
