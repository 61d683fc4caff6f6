package database

import (
	"fmt"

	"fintrack/internal/logger"
	"fintrack/internal/models"

	"gorm.io/gorm"
)

// defaultCategories are the system category templates created at first boot.
// They have no owner and are copied per-user at registration.
var defaultCategories = []models.Category{
	{Name: "Food", Color: "#FF5733"},
	{Name: "Transportation", Color: "#33FF57"},
	{Name: "Housing", Color: "#3357FF"},
	{Name: "Entertainment", Color: "#F033FF"},
	{Name: "Utilities", Color: "#FF9033"},
	{Name: "Healthcare", Color: "#33FFF0"},
	{Name: "Education", Color: "#FF33A8"},
	{Name: "Shopping", Color: "#A833FF"},
	{Name: "Personal", Color: "#33A8FF"},
	{Name: "Other", Color: "#AAAAAA"},
}

// SeedDefaultCategories inserts the system category templates if the
// categories table is empty. Safe to call on every startup.
func SeedDefaultCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, cat := range defaultCategories {
		c := cat
		if err := db.Create(&c).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	logger.Get().Infof("Seeded %d default categories", len(defaultCategories))
	return nil
}
