package main

import (
	"log"

	"lms/config"
	"lms/database"
	"lms/models"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	categories := []string{
		"Computer Science",
		"Music",
		"Fitness",
		"Photography",
		"Accounting",
		"Engineering",
		"Filming",
	}

	created := 0
	for _, name := range categories {
		var existing models.Category
		if err := database.Database.Db.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}

		if err := database.Database.Db.Create(&models.Category{Name: name}).Error; err != nil {
			log.Fatalf("Failed to seed category %q: %v", name, err)
		}
		created++
	}

	log.Printf("Seeding complete, %d categories created", created)
}
