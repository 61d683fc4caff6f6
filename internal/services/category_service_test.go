package services

import (
	"testing"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/testutil"
)

func TestGetUserCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewCategoryService(db)

	t.Run("returns_only_own_categories_ordered_by_name", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		testutil.CreateTestCategoryWithName(t, db, user.ID, "Transport")
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Food")
		testutil.CreateTestCategoryWithName(t, db, other.ID, "Housing")
		testutil.CreateTemplateCategory(t, db, "Entertainment", "#F033FF")

		categories, err := service.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)

		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(categories))
		}
		if categories[0].Name != "Food" || categories[1].Name != "Transport" {
			t.Errorf("expected [Food Transport], got [%s %s]", categories[0].Name, categories[1].Name)
		}
	})
}

func TestGetCategoryByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewCategoryService(db)

	t.Run("returns_own_category", func(t *testing.T) {
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, user.ID)

		found, err := service.GetCategoryByID(user.ID, category.ID)
		testutil.AssertNoError(t, err)
		if found.ID != category.ID {
			t.Errorf("expected category %d, got %d", category.ID, found.ID)
		}
	})

	t.Run("cross_user_access_is_not_found", func(t *testing.T) {
		owner := testutil.CreateTestUser(t, db)
		intruder := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, owner.ID)

		_, err := service.GetCategoryByID(intruder.ID, category.ID)
		testutil.AssertAppError(t, err, apperrors.ErrCategoryNotFound.Code)
	})
}

func TestCopyTemplatesToUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	service := NewCategoryService(db)

	t.Run("copies_templates_with_colors", func(t *testing.T) {
		testutil.CreateTemplateCategory(t, db, "Food", "#FF5733")
		testutil.CreateTemplateCategory(t, db, "Other", "#AAAAAA")
		user := testutil.CreateTestUser(t, db)

		err := service.CopyTemplatesToUser(db, user.ID)
		testutil.AssertNoError(t, err)

		categories, err := service.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 2 {
			t.Fatalf("expected 2 copied categories, got %d", len(categories))
		}
		if categories[0].Name != "Food" || categories[0].Color != "#FF5733" {
			t.Errorf("expected Food #FF5733, got %s %s", categories[0].Name, categories[0].Color)
		}
		for _, c := range categories {
			if c.UserID == nil || *c.UserID != user.ID {
				t.Errorf("copied category %s not owned by user", c.Name)
			}
		}
	})
}
