package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestBudgetFlow_SetAndTrackSpending(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Maria", "budget@test.com", "password123")

	foodID := app.findCategory(t, token, "Food")

	// Plan 200 for Food in March
	rec := app.request("PUT", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":3,"year":2024,"planned":200}`, foodID), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 setting budget, got %d: %s", rec.Code, rec.Body.String())
	}

	// Before any spending the line is untouched
	rec = app.request("GET", "/api/v1/budgets?month=3&year=2024", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	budgets := parseJSON(t, rec)["budgets"].([]interface{})
	if len(budgets) != 1 {
		t.Fatalf("expected 1 budget line, got %d", len(budgets))
	}
	line := budgets[0].(map[string]interface{})
	if amount(t, line["realized"]) != 0 {
		t.Errorf("expected 0 realized before spending, got %v", line["realized"])
	}
	if line["percent_used"].(float64) != 0 {
		t.Errorf("expected 0%% used, got %v", line["percent_used"])
	}

	// Spend 80 and 50 on Food in March
	for _, body := range []string{
		fmt.Sprintf(`{"category_id":%.0f,"date":"2024-03-08T00:00:00Z","amount":80,"description":"weekly groceries"}`, foodID),
		fmt.Sprintf(`{"category_id":%.0f,"date":"2024-03-15T00:00:00Z","amount":50,"description":"more groceries"}`, foodID),
	} {
		rec = app.request("POST", "/api/v1/transactions", body, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	// 130 of 200 spent
	rec = app.request("GET", "/api/v1/budgets?month=3&year=2024", "", token)
	line = parseJSON(t, rec)["budgets"].([]interface{})[0].(map[string]interface{})
	if amount(t, line["realized"]) != 130 {
		t.Errorf("expected 130 realized, got %v", line["realized"])
	}
	if amount(t, line["variance"]) != 70 {
		t.Errorf("expected 70 variance, got %v", line["variance"])
	}
	if line["percent_used"].(float64) != 65 {
		t.Errorf("expected 65%% used, got %v", line["percent_used"])
	}
}

func TestBudgetFlow_SetAgainOverwrites(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Maria", "upsert@test.com", "password123")

	foodID := app.findCategory(t, token, "Food")

	rec := app.request("PUT", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":3,"year":2024,"planned":500}`, foodID), token)
	firstID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	rec = app.request("PUT", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":3,"year":2024,"planned":700}`, foodID), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	second := parseJSON(t, rec)["budget"].(map[string]interface{})
	if second["id"].(float64) != firstID {
		t.Errorf("expected the same budget row to be reused, got id %v vs %v", second["id"], firstID)
	}
	if amount(t, second["planned"]) != 700 {
		t.Errorf("expected planned 700 after overwrite, got %v", second["planned"])
	}

	rec = app.request("GET", "/api/v1/budgets?month=3&year=2024", "", token)
	if got := len(parseJSON(t, rec)["budgets"].([]interface{})); got != 1 {
		t.Errorf("expected a single budget line after overwrite, got %d", got)
	}
}

func TestBudgetFlow_IncomeCategoryRejected(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Maria", "incomebudget@test.com", "password123")

	salaryID := app.findCategory(t, token, "Salary")

	rec := app.request("PUT", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":3,"year":2024,"planned":1000}`, salaryID), token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for income category, got %d: %s", rec.Code, rec.Body.String())
	}
	errDetail := parseJSON(t, rec)["error"].(map[string]interface{})
	if errDetail["code"] != "NOT_EXPENSE_CATEGORY" {
		t.Errorf("expected NOT_EXPENSE_CATEGORY, got %v", errDetail["code"])
	}
}

func TestBudgetFlow_Summary(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Maria", "summary@test.com", "password123")

	foodID := app.findCategory(t, token, "Food")
	rentID := app.findCategory(t, token, "Housing")

	app.request("PUT", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":3,"year":2024,"planned":200}`, foodID), token)
	app.request("PUT", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":3,"year":2024,"planned":800}`, rentID), token)

	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"category_id":%.0f,"date":"2024-03-08T00:00:00Z","amount":45,"description":"groceries"}`, foodID), token)
	app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"category_id":%.0f,"date":"2024-03-01T00:00:00Z","amount":800,"description":"rent"}`, rentID), token)

	rec := app.request("GET", "/api/v1/budgets/summary?month=3&year=2024", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if amount(t, summary["total_planned"]) != 1000 {
		t.Errorf("expected 1000 planned, got %v", summary["total_planned"])
	}
	if amount(t, summary["total_realized"]) != 845 {
		t.Errorf("expected 845 realized, got %v", summary["total_realized"])
	}
	if amount(t, summary["variance"]) != 155 {
		t.Errorf("expected 155 variance, got %v", summary["variance"])
	}
	if summary["percent_used"].(float64) != 84.5 {
		t.Errorf("expected 84.5%% used, got %v", summary["percent_used"])
	}
}

func TestBudgetFlow_DeleteFreesCategory(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Maria", "budgetdelete@test.com", "password123")

	foodID := app.findCategory(t, token, "Food")

	rec := app.request("PUT", "/api/v1/budgets",
		fmt.Sprintf(`{"category_id":%.0f,"month":3,"year":2024,"planned":200}`, foodID), token)
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	// The category cannot be removed while the budget references it.
	rec = app.request("DELETE", fmt.Sprintf("/api/v1/categories/%.0f", foodID), "", token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting budgeted category, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/budgets/%.0f", budgetID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", fmt.Sprintf("/api/v1/categories/%.0f", foodID), "", token)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 deleting category after budget removal, got %d: %s", rec.Code, rec.Body.String())
	}
}
