package services

import (
	"testing"
	"time"

	"fintrack/internal/testutil"
)

func TestCategoryTotals(t *testing.T) {
	t.Run("bucketed_and_summed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)

		food := testutil.CreateTestCategoryWithName(t, db, user.ID, "Food")
		rent := testutil.CreateTestCategoryWithName(t, db, user.ID, "Housing")

		testutil.CreateTestExpense(t, db, user.ID, &food.ID, 1000)
		testutil.CreateTestExpense(t, db, user.ID, &food.ID, 2000)
		testutil.CreateTestExpense(t, db, user.ID, &rent.ID, 3000)

		totals, err := svc.CategoryTotals(user.ID)
		testutil.AssertNoError(t, err)

		if len(totals) != 2 {
			t.Fatalf("expected 2 buckets, got %d", len(totals))
		}

		var sum int64
		byName := make(map[string]int64)
		for _, ct := range totals {
			sum += ct.Total
			byName[ct.Name] = ct.Total
		}
		if sum != 6000 {
			t.Errorf("expected totals summing to 6000, got %d", sum)
		}
		if byName["Food"] != 3000 || byName["Housing"] != 3000 {
			t.Errorf("wrong bucketing: %v", byName)
		}
	})

	t.Run("income_excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID)

		testutil.CreateTestExpenseOn(t, db, user.ID, &cat.ID, 99999, true, time.Now())
		testutil.CreateTestExpense(t, db, user.ID, &cat.ID, 500)

		totals, err := svc.CategoryTotals(user.ID)
		testutil.AssertNoError(t, err)

		if len(totals) != 1 || totals[0].Total != 500 {
			t.Errorf("expected income to be excluded, got %+v", totals)
		}
	})

	t.Run("uncategorized_bucket", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, nil, 750)

		totals, err := svc.CategoryTotals(user.ID)
		testutil.AssertNoError(t, err)

		if len(totals) != 1 || totals[0].Name != UncategorizedLabel {
			t.Fatalf("expected single Uncategorized bucket, got %+v", totals)
		}
		if totals[0].Color != "" {
			t.Errorf("expected no color for Uncategorized, got %q", totals[0].Color)
		}
	})

	t.Run("empty_means_nothing_to_render", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)

		totals, err := svc.CategoryTotals(user.ID)
		testutil.AssertNoError(t, err)
		if totals != nil {
			t.Errorf("expected nil for empty expense set, got %+v", totals)
		}
	})
}

func TestMonthlyTrend(t *testing.T) {
	t.Run("chronological_with_zero_fill", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Now().UTC()
		twoMonthsAgo := now.AddDate(0, -2, 0)
		oneMonthAgo := now.AddDate(0, -1, 0)

		// Two months ago: expense only. One month ago: income only.
		testutil.CreateTestExpenseOn(t, db, user.ID, nil, 4000, false, twoMonthsAgo)
		testutil.CreateTestExpenseOn(t, db, user.ID, nil, 10000, true, oneMonthAgo)

		points, err := svc.MonthlyTrend(user.ID, 6)
		testutil.AssertNoError(t, err)

		if len(points) != 2 {
			t.Fatalf("expected 2 months, got %d", len(points))
		}
		if points[0].Month >= points[1].Month {
			t.Errorf("expected ascending months, got %s then %s", points[0].Month, points[1].Month)
		}

		// A month with zero expenses still holds its chronological position,
		// with the missing side zero-filled.
		if points[0].Month != twoMonthsAgo.Format("2006-01") {
			t.Errorf("expected first point %s, got %s", twoMonthsAgo.Format("2006-01"), points[0].Month)
		}
		if points[0].Expense != 4000 || points[0].Income != 0 {
			t.Errorf("wrong totals for first month: %+v", points[0])
		}
		if points[1].Income != 10000 || points[1].Expense != 0 {
			t.Errorf("wrong totals for second month: %+v", points[1])
		}
	})

	t.Run("window_excludes_old_months", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)

		now := time.Now().UTC()
		testutil.CreateTestExpenseOn(t, db, user.ID, nil, 100, false, now.AddDate(-1, 0, 0))
		testutil.CreateTestExpenseOn(t, db, user.ID, nil, 200, false, now)

		points, err := svc.MonthlyTrend(user.ID, 6)
		testutil.AssertNoError(t, err)

		if len(points) != 1 {
			t.Fatalf("expected only the recent month, got %d points", len(points))
		}
		if points[0].Expense != 200 {
			t.Errorf("expected amount 200, got %d", points[0].Expense)
		}
	})

	t.Run("empty_means_nothing_to_render", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAnalyticsService(db)
		user := testutil.CreateTestUser(t, db)

		points, err := svc.MonthlyTrend(user.ID, 6)
		testutil.AssertNoError(t, err)
		if points != nil {
			t.Errorf("expected nil for empty expense set, got %+v", points)
		}
	})
}
