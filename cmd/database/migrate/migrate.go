package migration

import (
	"log"

	"gorm.io/gorm"

	"worthy-waste/entities"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 backs every primary key
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		log.Printf("Error creating uuid-ossp extension: %v", err)
		return err
	}

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Printf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		log.Printf("Error migrating food item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Transaction{}); err != nil {
		log.Printf("Error migrating transaction database: %v", err)
		return err
	}

	log.Println("Database migration complete")
	return nil
}
