package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gharmitra/platform-backend/internal/agreements"
	"gharmitra/platform-backend/internal/auth"
	"gharmitra/platform-backend/internal/config"
	"gharmitra/platform-backend/internal/contacts"
	"gharmitra/platform-backend/internal/notifications"
	"gharmitra/platform-backend/internal/properties"
	"gharmitra/platform-backend/internal/verification"
	"gharmitra/platform-backend/internal/wishlists"
)

// allModels is the schema registry; AutoMigrate walks it in order, so
// referenced tables come before the tables that reference them.
func allModels() []interface{} {
	return []interface{}{
		&auth.User{},
		&properties.Property{},
		&properties.PropertyImage{},
		&verification.VerificationRequest{},
		&contacts.Lead{},
		&wishlists.WishlistItem{},
		&notifications.Notification{},
		&agreements.Agreement{},
	}
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema management",
	}
	rootCmd.AddCommand(upCmd(), statusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		return nil, err
	}
	return gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply the current schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(allModels()...); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("schema up to date")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which tables exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			migrator := db.Migrator()

			fmt.Printf("%-30s  %-8s\n", "Table", "Status")
			for _, model := range allModels() {
				status := "Missing"
				if migrator.HasTable(model) {
					status = "Present"
				}
				stmt := &gorm.Statement{DB: db}
				if err := stmt.Parse(model); err != nil {
					return err
				}
				fmt.Printf("%-30s  %-8s\n", stmt.Schema.Table, status)
			}
			return nil
		},
	}
}
