package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"fintrack/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username/email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := nextID()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     fmt.Sprintf("user%d", n),
		Email:        fmt.Sprintf("user%d@test.com", n),
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category owned by the given user.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID uint) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, userID, fmt.Sprintf("Test Category %d", nextID()))
}

// CreateTestCategoryWithName creates a category with the given name.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, userID uint, name string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:   name,
		Color:  models.DefaultCategoryColor,
		UserID: &userID,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTemplateCategory creates a system category template (no owner).
func CreateTemplateCategory(t *testing.T, db *gorm.DB, name, color string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, Color: color}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create template category: %v", err)
	}
	return category
}

// CreateTestExpense creates an outgoing expense of the given amount (in cents).
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, categoryID *uint, amount int64) *models.Expense {
	t.Helper()
	return CreateTestExpenseOn(t, db, userID, categoryID, amount, false, time.Now())
}

// CreateTestExpenseOn creates a transaction with full control over direction and date.
func CreateTestExpenseOn(t *testing.T, db *gorm.DB, userID uint, categoryID *uint, amount int64, isIncome bool, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		Amount:      amount,
		Description: fmt.Sprintf("Test expense %d", nextID()),
		Date:        date,
		IsIncome:    isIncome,
		UserID:      userID,
		CategoryID:  categoryID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
