package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/spf13/cobra"

	"barpos.GO/config"
	"barpos.GO/migrations"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply schema migrations for the configured database",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := newMigrator()
		if err != nil {
			fmt.Printf("Migration setup failed: %v\n", err)
			os.Exit(1)
		}
		if migrateDown {
			err = m.Down()
		} else {
			err = m.Up()
		}
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("Database already up to date.")
			return
		}
		if err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Migrations applied.")
	},
}

func newMigrator() (*migrate.Migrate, error) {
	gdb, err := config.NewDB()
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}

	driverName := os.Getenv("DB_DRIVER")
	if driverName == "" {
		driverName = "sqlite"
	}

	var drv database.Driver
	switch driverName {
	case "sqlite":
		drv, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	case "mysql":
		drv, err = migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driverName)
	}
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrations.FS, driverName)
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", src, driverName, drv)
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Revert all migrations instead of applying them")
	rootCmd.AddCommand(migrateCmd)
}
