package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/testutil"
)

func TestRegister(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		user, err := svc.Register("alice", "Alice@Example.com", "sup3rsecret")
		testutil.AssertNoError(t, err)

		if user.ID == 0 {
			t.Fatal("expected non-zero user ID")
		}
		if user.Email != "alice@example.com" {
			t.Errorf("expected lowercased email, got %s", user.Email)
		}
		if user.PasswordHash == "sup3rsecret" || user.PasswordHash == "" {
			t.Error("expected password to be stored as a hash")
		}
	})

	t.Run("copies_category_templates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		catSvc := NewCategoryService(db)
		svc := NewUserService(db, catSvc)

		testutil.CreateTemplateCategory(t, db, "Food", "#FF5733")
		testutil.CreateTemplateCategory(t, db, "Housing", "#3357FF")

		user, err := svc.Register("bob", "bob@example.com", "sup3rsecret")
		testutil.AssertNoError(t, err)

		cats, err := catSvc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)
		if len(cats) != 2 {
			t.Fatalf("expected 2 copied categories, got %d", len(cats))
		}
		for _, c := range cats {
			if c.UserID == nil || *c.UserID != user.ID {
				t.Errorf("copied category %q not owned by new user", c.Name)
			}
		}

		// Templates must stay untouched
		var templateCount int64
		db.Model(&models.Category{}).Where("user_id IS NULL").Count(&templateCount)
		if templateCount != 2 {
			t.Errorf("expected 2 templates to remain, got %d", templateCount)
		}
	})

	t.Run("duplicate_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		_, err := svc.Register("carol", "carol@example.com", "sup3rsecret")
		testutil.AssertNoError(t, err)

		_, err = svc.Register("carol2", "carol@example.com", "sup3rsecret")
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("duplicate_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		_, err := svc.Register("dave", "dave@example.com", "sup3rsecret")
		testutil.AssertNoError(t, err)

		_, err = svc.Register("dave", "dave2@example.com", "sup3rsecret")
		testutil.AssertAppError(t, err, "DUPLICATE_USERNAME")
	})

	t.Run("missing_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		_, err := svc.Register("", "x@example.com", "sup3rsecret")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestAttemptLogin(t *testing.T) {
	t.Run("valid_records_last_login", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		registered, err := svc.Register("erin", "erin@example.com", "sup3rsecret")
		testutil.AssertNoError(t, err)

		user, err := svc.AttemptLogin("erin@example.com", "sup3rsecret")
		testutil.AssertNoError(t, err)

		if user.ID != registered.ID {
			t.Errorf("expected user %d, got %d", registered.ID, user.ID)
		}
		if user.LastLoginAt == nil {
			t.Error("expected last login timestamp to be recorded")
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		_, err := svc.Register("frank", "frank@example.com", "sup3rsecret")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin("frank@example.com", "wrong")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("unknown_email_same_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		_, err := svc.AttemptLogin("ghost@example.com", "whatever")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		updated, err := svc.UpdateProfile(user.ID, "newname", "newmail@example.com")
		testutil.AssertNoError(t, err)

		if updated.Username != "newname" || updated.Email != "newmail@example.com" {
			t.Errorf("profile not updated: %+v", updated)
		}
	})

	t.Run("email_taken_by_other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, user.Username, other.Email)
		testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
	})

	t.Run("keeping_own_values_is_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateProfile(user.ID, user.Username, user.Email)
		testutil.AssertNoError(t, err)
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		err := svc.ChangePassword(user.ID, "password123", "newpassword456")
		testutil.AssertNoError(t, err)

		_, err = svc.AttemptLogin(user.Email, "newpassword456")
		testutil.AssertNoError(t, err)
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		err := svc.ChangePassword(user.ID, "nope", "newpassword456")
		testutil.AssertAppError(t, err, "WRONG_PASSWORD")
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("removes_user_expenses_and_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)

		cat := testutil.CreateTestCategory(t, db, user.ID)
		testutil.CreateTestExpense(t, db, user.ID, &cat.ID, 1000)
		testutil.CreateTestExpense(t, db, user.ID, nil, 2000)

		otherCat := testutil.CreateTestCategory(t, db, other.ID)
		testutil.CreateTestExpense(t, db, other.ID, &otherCat.ID, 3000)

		err := svc.DeleteAccount(user.ID)
		testutil.AssertNoError(t, err)

		var userCount, catCount, expCount int64
		db.Model(&models.User{}).Where("id = ?", user.ID).Count(&userCount)
		db.Model(&models.Category{}).Where("user_id = ?", user.ID).Count(&catCount)
		db.Model(&models.Expense{}).Where("user_id = ?", user.ID).Count(&expCount)
		if userCount != 0 || catCount != 0 || expCount != 0 {
			t.Errorf("expected full cascade, got user=%d categories=%d expenses=%d", userCount, catCount, expCount)
		}

		// The other user's data must survive
		var otherExp int64
		db.Model(&models.Expense{}).Where("user_id = ?", other.ID).Count(&otherExp)
		if otherExp != 1 {
			t.Errorf("expected other user's expense to survive, got %d", otherExp)
		}
	})

	t.Run("unknown_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewUserService(db, NewCategoryService(db))

		err := svc.DeleteAccount(99999)
		testutil.AssertAppError(t, err, "USER_NOT_FOUND")
	})
}
