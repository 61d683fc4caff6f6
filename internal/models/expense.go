package models

import "time"

// RecurringFrequency describes how often a recurring expense repeats.
// Recurrence is recorded but future rows are never generated automatically.
type RecurringFrequency string

const (
	FrequencyDaily   RecurringFrequency = "daily"
	FrequencyWeekly  RecurringFrequency = "weekly"
	FrequencyMonthly RecurringFrequency = "monthly"
	FrequencyYearly  RecurringFrequency = "yearly"
)

// Valid reports whether the frequency is one of the supported values.
func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Expense is a single income or outgoing transaction. Amount is a
// non-negative magnitude in cents; direction is carried by IsIncome.
type Expense struct {
	ID                 uint                `gorm:"primaryKey" json:"id"`
	Amount             int64               `gorm:"type:bigint;not null" json:"amount"`
	Description        string              `gorm:"size:256" json:"description"`
	Date               time.Time           `gorm:"not null;index" json:"date"`
	CreatedAt          time.Time           `json:"created_at"`
	IsIncome           bool                `gorm:"default:false" json:"is_income"`
	IsRecurring        bool                `gorm:"default:false" json:"is_recurring"`
	RecurringFrequency *RecurringFrequency `gorm:"size:20" json:"recurring_frequency,omitempty"`

	// Foreign keys
	UserID     uint  `gorm:"not null;index" json:"user_id"`
	CategoryID *uint `gorm:"index" json:"category_id,omitempty"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
