package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"barpos.GO/config"
	entity "barpos.GO/model/entity"
)

var seedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Insert the demo dataset: users, tables and the default menu",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			os.Exit(1)
		}
		if err := Seed(db); err != nil {
			fmt.Printf("Seed failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Seed data inserted.")
	},
}

// Seed inserts the demo dataset, skipping rows that already exist.
func Seed(db *gorm.DB) error {
	ignore := clause.OnConflict{DoNothing: true}

	users := []entity.User{
		{ID: 1, Username: "admin", Password: "admin", Role: "admin"},
		{ID: 2, Username: "mesero", Password: "mesero", Role: "mesero"},
	}
	if err := db.Clauses(ignore).Create(&users).Error; err != nil {
		return err
	}

	tables := make([]entity.Table, 0, 8)
	for i := 1; i <= 8; i++ {
		tables = append(tables, entity.Table{ID: uint(i), Name: fmt.Sprintf("Mesa %d", i)})
	}
	if err := db.Clauses(ignore).Create(&tables).Error; err != nil {
		return err
	}

	products := []entity.Product{
		{ID: 1, Name: "Cerveza Corona", Price: decimal.NewFromInt(45)},
		{ID: 2, Name: "Michelada", Price: decimal.NewFromInt(80)},
		{ID: 3, Name: "Mojito", Price: decimal.NewFromInt(95)},
		{ID: 4, Name: "Cuba Libre", Price: decimal.NewFromInt(90)},
		{ID: 5, Name: "Whisky", Price: decimal.NewFromInt(130)},
		{ID: 6, Name: "Papas con Chedar", Price: decimal.NewFromInt(75)},
	}
	if err := db.Clauses(ignore).Create(&products).Error; err != nil {
		return err
	}
	for _, p := range products {
		inv := entity.Inventory{ProductID: p.ID, Stock: 20}
		if err := db.Clauses(ignore).Create(&inv).Error; err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
