package response

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error {
		return Success(c, "done", fiber.Map{"id": 1})
	})
	app.Post("/created", func(c *fiber.Ctx) error {
		return Created(c, "created", nil)
	})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return Forbidden(c, "no access")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return InternalServerError(c, "Internal server error")
	})
	app.Get("/taken", func(c *fiber.Ctx) error {
		return Conflict(c, "already exists")
	})
	app.Get("/slow-down", func(c *fiber.Ctx) error {
		return TooManyRequests(c, "Too many requests")
	})

	tests := []struct {
		method      string
		path        string
		wantStatus  int
		wantSuccess bool
		wantError   string
	}{
		{"GET", "/ok", 200, true, ""},
		{"POST", "/created", 201, true, ""},
		{"GET", "/forbidden", 403, false, "no access"},
		{"GET", "/boom", 500, false, "Internal server error"},
		{"GET", "/taken", 409, false, "already exists"},
		{"GET", "/slow-down", 429, false, "Too many requests"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			body, _ := io.ReadAll(resp.Body)
			var got Response
			if err := json.Unmarshal(body, &got); err != nil {
				t.Fatalf("decode %s: %v", body, err)
			}
			if got.Success != tt.wantSuccess || got.Error != tt.wantError {
				t.Fatalf("unexpected envelope: %s", body)
			}
		})
	}
}

func TestEnvelope_OmitsEmptyFields(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return BadRequest(c, "bad")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"success":false,"error":"bad"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
