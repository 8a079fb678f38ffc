package db

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var ORM *gorm.DB

// ConnectDB открывает локальную sqlite-базу архива чата
func ConnectDB(path string) error {
	if ORM != nil {
		log.Println("ORM is already initialized")
		return nil
	}

	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := Migrate(database); err != nil {
		return err
	}

	ORM = database
	return nil
}
