package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuth_RegisterSeedsStarterCategories(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Maria", "maria@test.com", "password123")

	rec := app.request("GET", "/api/v1/categories", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	categories := parseJSON(t, rec)["categories"].([]interface{})
	if len(categories) != 10 {
		t.Errorf("expected 10 starter categories, got %d", len(categories))
	}

	kinds := map[string]int{}
	for _, raw := range categories {
		cat := raw.(map[string]interface{})
		kinds[cat["kind"].(string)]++
		if cat["color"].(string) == "" {
			t.Errorf("category %v has no color", cat["name"])
		}
	}
	if kinds["expense"] != 7 || kinds["income"] != 3 {
		t.Errorf("expected 7 expense and 3 income categories, got %v", kinds)
	}
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "Maria", "dupe@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/register",
		`{"name":"Other","email":"dupe@test.com","password":"password456"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	errDetail := parseJSON(t, rec)["error"].(map[string]interface{})
	if errDetail["code"] != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %v", errDetail["code"])
	}
}

func TestAuth_LoginAndProfile(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "Maria", "login@test.com", "password123")

	token, _ := app.loginUser(t, "login@test.com", "password123")

	rec := app.request("GET", "/api/v1/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	if user["name"] != "Maria" || user["email"] != "login@test.com" {
		t.Errorf("unexpected profile: %v", user)
	}
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)
	app.registerUser(t, "Maria", "wrongpw@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/login",
		`{"email":"wrongpw@test.com","password":"nope12345"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuth_RefreshRotatesTokens(t *testing.T) {
	app := setupApp(t)
	_, refresh, _ := app.registerUser(t, "Maria", "refresh@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, refresh), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	newAccess := result["access_token"].(string)
	if newAccess == "" {
		t.Fatal("expected a new access token")
	}

	// The refreshed access token works against protected routes.
	rec = app.request("GET", "/api/v1/profile", "", newAccess)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with refreshed token, got %d", rec.Code)
	}
}

func TestAuth_AccessTokenRejectedAsRefresh(t *testing.T) {
	app := setupApp(t)
	access, _, _ := app.registerUser(t, "Maria", "tokentype@test.com", "password123")

	rec := app.request("POST", "/api/v1/auth/refresh",
		fmt.Sprintf(`{"refresh_token":%q}`, access), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for access token used as refresh, got %d", rec.Code)
	}
}

func TestAuth_ProtectedRoutesRequireToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/transactions", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestAuth_DeleteAccountCascades(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "Maria", "cascade@test.com", "password123")

	catID := app.findCategory(t, token, "Food")
	rec := app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"category_id":%.0f,"date":"2024-03-10T00:00:00Z","amount":50,"description":"groceries"}`, catID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("DELETE", "/api/v1/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 deleting account, got %d: %s", rec.Code, rec.Body.String())
	}

	// Everything owned by the user is gone.
	for _, table := range []string{"users", "categories", "transactions"} {
		var count int64
		if err := app.DB.Table(table).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("expected %s to be empty after account deletion, got %d rows", table, count)
		}
	}

	// The old credentials no longer work.
	rec = app.request("POST", "/api/v1/auth/login",
		`{"email":"cascade@test.com","password":"password123"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after account deletion, got %d", rec.Code)
	}
}
