package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
	"github.com/reelflip/jeeprep-api/services"
	authutil "github.com/reelflip/jeeprep-api/utils/auth"
	"github.com/reelflip/jeeprep-api/utils/middleware"
)

func newTestApp(t *testing.T) (*fiber.App, *database.Store) {
	t.Helper()

	store := database.NewStore(database.NewMemoryKV())
	jwtManager := authutil.NewJWTManager(authutil.JWTConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "jeeprep-api-test",
	})
	handler := NewAuthHandler(services.NewAuthService(store), jwtManager)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, store)

	app := fiber.New()
	app.Post("/api/v1/auth/login", handler.Login)
	app.Post("/api/v1/auth/register", handler.Register)
	app.Post("/api/v1/auth/recover", handler.Recover)
	app.Get("/api/v1/auth/me", authMiddleware.Required(), handler.Me)

	return app, store
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode body %s: %v", raw, err)
	}
	return body
}

func TestLoginEndpoint(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
		"email":    database.SeedStudentEmail,
		"password": "password123",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	data, _ := body["data"].(map[string]any)
	if data == nil {
		t.Fatalf("missing data envelope: %v", body)
	}
	if data["access_token"] == "" || data["access_token"] == nil {
		t.Error("login must issue an access token")
	}
	user, _ := data["user"].(map[string]any)
	if user == nil || user["email"] != database.SeedStudentEmail {
		t.Errorf("unexpected user payload: %v", data["user"])
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password must never appear in a response")
	}
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
		"email":    database.SeedStudentEmail,
		"password": "wrong",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginEndpointBlockedAccount(t *testing.T) {
	app, store := newTestApp(t)

	_, err := store.Mutate(context.Background(), func(doc *model.Document) error {
		doc.UserByID(database.SeedStudentID).Status = model.StatusBlocked
		return nil
	})
	if err != nil {
		t.Fatalf("block user: %v", err)
	}

	resp := postJSON(t, app, "/api/v1/auth/login", fiber.Map{
		"email":    database.SeedStudentEmail,
		"password": "password123",
	})
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403 for a blocked account", resp.StatusCode)
	}
}

func TestRegisterThenMe(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"name":          "Priya",
		"email":         "priya@example.com",
		"password":      "secret123",
		"recovery_hint": "pet name",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	data, _ := decodeBody(t, resp)["data"].(map[string]any)
	token, _ := data["access_token"].(string)
	if token == "" {
		t.Fatal("registration must issue an access token")
	}

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("me request: %v", err)
	}
	if meResp.StatusCode != fiber.StatusOK {
		t.Fatalf("me status = %d, want 200", meResp.StatusCode)
	}
	me, _ := decodeBody(t, meResp)["data"].(map[string]any)
	if me == nil || me["email"] != "priya@example.com" {
		t.Errorf("unexpected me payload: %v", me)
	}
	if me["role"] != model.RoleStudent {
		t.Errorf("role = %v, want student", me["role"])
	}
}

func TestRegisterValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"name":     "P",
		"email":    "not-an-email",
		"password": "123",
	})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	app, _ := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/auth/register", fiber.Map{
		"name":          "Imposter",
		"email":         database.SeedStudentEmail,
		"password":      "secret123",
		"recovery_hint": "x",
	})
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestMeWithoutToken(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/auth/me", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("me request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}
