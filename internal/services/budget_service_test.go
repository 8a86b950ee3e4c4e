package services

import (
	"testing"

	"grana/internal/models"
	"grana/internal/testutil"
)

func TestSetBudget(t *testing.T) {
	t.Run("creates_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		budget, err := svc.SetBudget(user.ID, cat.ID, 3, 2024, dec("500"))
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		testutil.AssertDecimalEqual(t, "500", budget.Planned)
	})

	t.Run("upsert_overwrites_existing_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		first, err := svc.SetBudget(user.ID, cat.ID, 3, 2024, dec("500"))
		testutil.AssertNoError(t, err)
		second, err := svc.SetBudget(user.ID, cat.ID, 3, 2024, dec("700"))
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected upsert to reuse row %d, got %d", first.ID, second.ID)
		}
		var count int64
		db.Model(&models.MonthlyBudget{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Fatalf("expected a single budget row, got %d", count)
		}
		var stored models.MonthlyBudget
		db.First(&stored, first.ID)
		testutil.AssertDecimalEqual(t, "700", stored.Planned)
	})

	t.Run("income_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		salary := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindIncome)

		_, err := svc.SetBudget(user.ID, salary.ID, 3, 2024, dec("500"))
		testutil.AssertAppError(t, err, "NOT_EXPENSE_CATEGORY")
	})

	t.Run("category_not_owned", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestCategory(t, db, other.ID, models.CategoryKindExpense)

		_, err := svc.SetBudget(user.ID, foreign.ID, 3, 2024, dec("500"))
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("invalid_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		_, err := svc.SetBudget(user.ID, cat.ID, 0, 2024, dec("500"))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		_, err = svc.SetBudget(user.ID, cat.ID, 13, 2024, dec("500"))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})
}

func TestListBudgets(t *testing.T) {
	t.Run("realized_amounts_from_period_spend", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		_, err := svc.SetBudget(user.ID, cat.ID, 3, 2024, dec("200"))
		testutil.AssertNoError(t, err)
		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, testutil.Date(2024, 3, 15), dec("45"))
		// Same category, different month: must not count.
		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, testutil.Date(2024, 4, 15), dec("999"))

		views, err := svc.ListBudgets(user.ID, 3, 2024)
		testutil.AssertNoError(t, err)

		if len(views) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(views))
		}
		v := views[0]
		testutil.AssertDecimalEqual(t, "200", v.Planned)
		testutil.AssertDecimalEqual(t, "45", v.Realized)
		testutil.AssertDecimalEqual(t, "155", v.Variance)
		if v.PercentUsed != 22.5 {
			t.Errorf("expected percent_used 22.5, got %v", v.PercentUsed)
		}
		if v.CategoryName == "" || v.CategoryColor == "" {
			t.Errorf("expected resolved category fields, got %+v", v)
		}
	})

	t.Run("zero_planned_guards_percent", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		_, err := svc.SetBudget(user.ID, cat.ID, 3, 2024, dec("0"))
		testutil.AssertNoError(t, err)
		testutil.CreateTestTransaction(t, db, user.ID, cat.ID, testutil.Date(2024, 3, 15), dec("45"))

		views, err := svc.ListBudgets(user.ID, 3, 2024)
		testutil.AssertNoError(t, err)
		if views[0].PercentUsed != 0 {
			t.Errorf("expected percent_used 0 for zero planned, got %v", views[0].PercentUsed)
		}
	})

	t.Run("ordered_by_category_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		for _, name := range []string{"Transport", "Food", "Rent"} {
			cat := &models.Category{UserID: user.ID, Name: name, Kind: models.CategoryKindExpense, Color: "#3498db"}
			if err := db.Create(cat).Error; err != nil {
				t.Fatalf("failed to create category: %v", err)
			}
			if _, err := svc.SetBudget(user.ID, cat.ID, 3, 2024, dec("100")); err != nil {
				t.Fatalf("failed to set budget: %v", err)
			}
		}

		views, err := svc.ListBudgets(user.ID, 3, 2024)
		testutil.AssertNoError(t, err)
		want := []string{"Food", "Rent", "Transport"}
		for i, name := range want {
			if views[i].CategoryName != name {
				t.Errorf("position %d: expected %s, got %s", i, name, views[i].CategoryName)
			}
		}
	})

	t.Run("scoped_to_user_and_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		otherCat := testutil.CreateTestCategory(t, db, other.ID, models.CategoryKindExpense)

		_, err := svc.SetBudget(user.ID, cat.ID, 3, 2024, dec("100"))
		testutil.AssertNoError(t, err)
		_, err = svc.SetBudget(user.ID, cat.ID, 4, 2024, dec("200"))
		testutil.AssertNoError(t, err)
		_, err = svc.SetBudget(other.ID, otherCat.ID, 3, 2024, dec("300"))
		testutil.AssertNoError(t, err)

		views, err := svc.ListBudgets(user.ID, 3, 2024)
		testutil.AssertNoError(t, err)
		if len(views) != 1 {
			t.Fatalf("expected 1 budget, got %d", len(views))
		}
		testutil.AssertDecimalEqual(t, "100", views[0].Planned)
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("deletes_owned_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		budget, err := svc.SetBudget(user.ID, cat.ID, 3, 2024, dec("100"))
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteBudget(user.ID, budget.ID))

		var count int64
		db.Model(&models.MonthlyBudget{}).Where("id = ?", budget.ID).Count(&count)
		if count != 0 {
			t.Error("expected budget row to be gone")
		}
	})

	t.Run("missing_or_foreign_budget", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		otherCat := testutil.CreateTestCategory(t, db, other.ID, models.CategoryKindExpense)

		theirs, err := svc.SetBudget(other.ID, otherCat.ID, 3, 2024, dec("100"))
		testutil.AssertNoError(t, err)

		testutil.AssertAppError(t, svc.DeleteBudget(user.ID, 9999), "NOT_FOUND")
		testutil.AssertAppError(t, svc.DeleteBudget(user.ID, theirs.ID), "NOT_FOUND")
	})
}

func TestBudgetSummary(t *testing.T) {
	t.Run("aggregates_across_categories", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		rent := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		_, err := svc.SetBudget(user.ID, food.ID, 3, 2024, dec("200"))
		testutil.AssertNoError(t, err)
		_, err = svc.SetBudget(user.ID, rent.ID, 3, 2024, dec("800"))
		testutil.AssertNoError(t, err)
		testutil.CreateTestTransaction(t, db, user.ID, food.ID, testutil.Date(2024, 3, 15), dec("45"))
		testutil.CreateTestTransaction(t, db, user.ID, rent.ID, testutil.Date(2024, 3, 1), dec("800"))

		summary, err := svc.Summary(user.ID, 3, 2024)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "1000", summary.TotalPlanned)
		testutil.AssertDecimalEqual(t, "845", summary.TotalRealized)
		testutil.AssertDecimalEqual(t, "155", summary.Variance)
		if summary.PercentUsed != 84.5 {
			t.Errorf("expected percent_used 84.5, got %v", summary.PercentUsed)
		}
	})

	t.Run("empty_period", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		summary, err := svc.Summary(user.ID, 1, 2030)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, "0", summary.TotalPlanned)
		testutil.AssertDecimalEqual(t, "0", summary.TotalRealized)
		if summary.PercentUsed != 0 {
			t.Errorf("expected percent_used 0, got %v", summary.PercentUsed)
		}
	})
}
