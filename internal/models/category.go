package models

import "time"

// DefaultCategoryColor is used when a category is created without a color.
const DefaultCategoryColor = "#3498db"

// Category groups expenses. A category with a nil UserID is a system
// template that gets copied to each user at registration.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:64;not null" json:"name"`
	Description string    `gorm:"size:256" json:"description"`
	Color       string    `gorm:"size:7;default:#3498db" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UserID      *uint     `gorm:"index" json:"user_id,omitempty"`

	// Relationships
	Expenses []Expense `gorm:"foreignKey:CategoryID" json:"expenses,omitempty"`
}

// IsTemplate reports whether the category is a system default template.
func (c *Category) IsTemplate() bool {
	return c.UserID == nil
}
