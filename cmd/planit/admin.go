package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"planit/internal/auth"
	"planit/internal/model"
	"planit/internal/repository"
	"planit/internal/service"
)

var adminPassword string

var createAdminCmd = &cobra.Command{
	Use:   "createadmin",
	Short: "Create the admin account if it does not exist",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "admin123", "password for the admin account")
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	_, db, err := openDB(true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	users := repository.NewUserRepository(db)
	exists, err := users.ExistsByUsername(ctx, "admin")
	if err != nil {
		return err
	}
	if exists {
		fmt.Println("Admin user already exists.")
		return nil
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	admin := model.User{Username: "admin", PasswordHash: hash, IsAdmin: true}
	if err := users.Provision(ctx, &admin, service.DefaultCategories); err != nil {
		return err
	}
	fmt.Println("Admin user created successfully.")
	return nil
}
