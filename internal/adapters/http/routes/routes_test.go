package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"hrdocs-api/internal/config"
	"hrdocs-api/internal/pkg/testdb"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func newTestServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := testdb.New(t)
	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "access-secret",
			RefreshSecret:    "refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "lax"},
	}

	app := fiber.New()
	Setup(app, db, cfg)
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("%s %s: decode %s: %v", method, path, raw, err)
		}
	}
	return resp.StatusCode, env
}

func login(t *testing.T, app *fiber.App, identifier, password string) tokenPair {
	t.Helper()

	status, env := call(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"identifier": identifier,
		"password":   password,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d (%s)", identifier, status, env.Error)
	}

	var pair tokenPair
	if err := json.Unmarshal(env.Data, &pair); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	return pair
}

func TestAuthFlow(t *testing.T) {
	app, db := newTestServer(t)
	user := testdb.CreateUser(t, db, "a@x.com", "alice", "password1")
	testdb.CreateUser(t, db, "b@x.com", "bob", "password1")

	// Failed logins
	status, _ := call(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"identifier": "alice", "password": "wrong"})
	if status != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", status)
	}
	status, _ = call(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"identifier": "alice"})
	if status != http.StatusBadRequest {
		t.Fatalf("missing password status = %d", status)
	}

	pair := login(t, app, "a@x.com", "password1")

	// Current identity
	status, env := call(t, app, http.MethodGet, "/api/v1/auth/me", pair.AccessToken, nil)
	if status != http.StatusOK {
		t.Fatalf("me status = %d", status)
	}
	var me map[string]interface{}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me["username"] != "alice" {
		t.Fatalf("unexpected me: %v", me)
	}
	if _, leaked := me["password"]; leaked {
		t.Fatalf("password leaked: %v", me)
	}
	if status, _ := call(t, app, http.MethodGet, "/api/v1/auth/me", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("me without token status = %d", status)
	}
	if status, _ := call(t, app, http.MethodGet, "/api/v1/auth/me", pair.RefreshToken, nil); status != http.StatusUnauthorized {
		t.Fatalf("me with refresh token status = %d", status)
	}

	// Rotation
	status, env = call(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{"refreshToken": pair.RefreshToken})
	if status != http.StatusOK {
		t.Fatalf("refresh status = %d (%s)", status, env.Error)
	}
	var rotated tokenPair
	if err := json.Unmarshal(env.Data, &rotated); err != nil {
		t.Fatalf("decode rotated: %v", err)
	}
	if rotated.RefreshToken == "" || rotated.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token not rotated")
	}
	if status, _ := call(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{"refreshToken": pair.RefreshToken}); status != http.StatusUnauthorized {
		t.Fatalf("reused refresh status = %d", status)
	}
	if status, _ := call(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{}); status != http.StatusBadRequest {
		t.Fatalf("empty refresh status = %d", status)
	}

	// Logout by another user is rejected and leaves the session usable
	bob := login(t, app, "bob", "password1")
	if status, _ := call(t, app, http.MethodPost, "/api/v1/auth/logout", bob.AccessToken, fiber.Map{"refreshToken": rotated.RefreshToken}); status != http.StatusUnauthorized {
		t.Fatalf("foreign logout status = %d", status)
	}

	status, env = call(t, app, http.MethodPost, "/api/v1/auth/logout", rotated.AccessToken, fiber.Map{"refreshToken": rotated.RefreshToken})
	if status != http.StatusOK {
		t.Fatalf("logout status = %d (%s)", status, env.Error)
	}
	if string(env.Data) != `{"revoked":true}` {
		t.Fatalf("logout data = %s", env.Data)
	}
	if status, _ := call(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{"refreshToken": rotated.RefreshToken}); status != http.StatusUnauthorized {
		t.Fatalf("refresh after logout status = %d", status)
	}

	// Logout everywhere
	second := login(t, app, "alice", "password1")
	if status, _ := call(t, app, http.MethodPost, "/api/v1/auth/logout-all", second.AccessToken, nil); status != http.StatusOK {
		t.Fatalf("logout-all status = %d", status)
	}
	if status, _ := call(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{"refreshToken": second.RefreshToken}); status != http.StatusUnauthorized {
		t.Fatalf("refresh after logout-all status = %d", status)
	}

	// Inactive users cannot log in
	db.Model(user).Update("is_active", false)
	if status, _ := call(t, app, http.MethodPost, "/api/v1/auth/login", "", fiber.Map{"identifier": "alice", "password": "password1"}); status != http.StatusForbidden {
		t.Fatalf("inactive login status = %d", status)
	}
}

func TestAdminRoutes(t *testing.T) {
	app, db := newTestServer(t)
	admin := testdb.CreateUser(t, db, "root@x.com", "root", "password1")
	db.Model(admin).Update("is_admin", true)
	testdb.CreateUser(t, db, "b@x.com", "bob", "password1")

	adminToken := login(t, app, "root", "password1").AccessToken
	bobToken := login(t, app, "bob", "password1").AccessToken

	if status, _ := call(t, app, http.MethodGet, "/api/v1/users", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("anonymous users status = %d", status)
	}
	if status, _ := call(t, app, http.MethodGet, "/api/v1/users", bobToken, nil); status != http.StatusForbidden {
		t.Fatalf("roleless users status = %d", status)
	}
	if status, _ := call(t, app, http.MethodGet, "/api/v1/users", adminToken, nil); status != http.StatusOK {
		t.Fatalf("admin users status = %d", status)
	}

	// Employee lifecycle
	status, env := call(t, app, http.MethodPost, "/api/v1/employees", adminToken, fiber.Map{
		"name":    "Carol King",
		"hiredAt": "2024-02-01",
		"user": fiber.Map{
			"email":    "carol@x.com",
			"username": "carol",
			"password": "password1",
		},
	})
	if status != http.StatusCreated {
		t.Fatalf("create employee status = %d (%s)", status, env.Error)
	}
	var employee struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &employee); err != nil {
		t.Fatalf("decode employee: %v", err)
	}

	status, _ = call(t, app, http.MethodPost, "/api/v1/employees", adminToken, fiber.Map{
		"name":    "Carol King",
		"hiredAt": "not-a-date",
		"user":    fiber.Map{"email": "c2@x.com", "username": "carol2", "password": "password1"},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("invalid employee status = %d", status)
	}

	// The new employee resolves to the employee role
	carol := login(t, app, "carol", "password1")
	_, env = call(t, app, http.MethodGet, "/api/v1/auth/me", carol.AccessToken, nil)
	var me struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Role != "employee" {
		t.Fatalf("role = %q, want employee", me.Role)
	}

	// Deleting the employee removes the account and its sessions
	path := "/api/v1/employees/" + itoa(employee.ID)
	if status, _ := call(t, app, http.MethodDelete, path, adminToken, nil); status != http.StatusOK {
		t.Fatalf("delete employee status = %d", status)
	}
	if status, _ := call(t, app, http.MethodGet, path, adminToken, nil); status != http.StatusNotFound {
		t.Fatalf("get deleted employee status = %d", status)
	}
	if status, _ := call(t, app, http.MethodPost, "/api/v1/auth/refresh", "", fiber.Map{"refreshToken": carol.RefreshToken}); status != http.StatusUnauthorized {
		t.Fatalf("refresh of deleted user status = %d", status)
	}

	// Admins cannot delete themselves
	if status, _ := call(t, app, http.MethodDelete, "/api/v1/users/"+itoa(admin.ID), adminToken, nil); status != http.StatusBadRequest {
		t.Fatalf("self delete status = %d", status)
	}
}

func TestAuthRoutesAreNeverCached(t *testing.T) {
	app, db := newTestServer(t)
	testdb.CreateUser(t, db, "a@x.com", "alice", "password1")
	pair := login(t, app, "alice", "password1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Cache-Control"); got != "no-store, no-cache, must-revalidate" {
		t.Fatalf("Cache-Control = %q", got)
	}
}

func TestListUsersPage(t *testing.T) {
	app, db := newTestServer(t)
	admin := testdb.CreateUser(t, db, "root@x.com", "root", "password1")
	db.Model(admin).Update("is_admin", true)
	testdb.CreateUser(t, db, "b@x.com", "bob", "password1")
	token := login(t, app, "root", "password1").AccessToken

	status, env := call(t, app, http.MethodGet, "/api/v1/users?page=2&limit=1", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list status = %d (%s)", status, env.Error)
	}

	var page struct {
		Items []struct {
			Username string `json:"username"`
		} `json:"items"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"total_pages"`
			HasPrev    bool  `json:"has_prev"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Items) != 1 || page.Meta.Total != 2 || page.Meta.TotalPages != 2 || !page.Meta.HasPrev {
		t.Fatalf("unexpected page: %s", env.Data)
	}
}

func TestHealth(t *testing.T) {
	app, _ := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
