package kit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func decodeEnvelope(t *testing.T, app *fiber.App, req string, header map[string]string) (int, map[string]any) {
	t.Helper()
	r := httptest.NewRequest("GET", req, nil)
	for k, v := range header {
		r.Header.Set(k, v)
	}
	res, err := app.Test(r)
	if err != nil {
		t.Fatalf("request err: %v", err)
	}
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res.StatusCode, body
}

func TestOKEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/menu", func(c *fiber.Ctx) error {
		return OK(c, fiber.Map{"html": "<ul></ul>"})
	})
	status, body := decodeEnvelope(t, app, "/menu", map[string]string{"X-Request-ID": "rid-1"})
	if status != fiber.StatusOK || body["code"] != "OK" || body["message"] != "success" {
		t.Fatalf("unexpected envelope: %d %v", status, body)
	}
	if body["request_id"] != "rid-1" {
		t.Fatalf("request id not echoed: %v", body["request_id"])
	}
	data := body["data"].(map[string]any)
	if data["html"] != "<ul></ul>" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestCreatedEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/containers", func(c *fiber.Ctx) error {
		return Created(c, fiber.Map{"id": 7})
	})
	status, body := decodeEnvelope(t, app, "/containers", nil)
	if status != fiber.StatusCreated || body["code"] != "OK" {
		t.Fatalf("unexpected envelope: %d %v", status, body)
	}
	if int(body["data"].(map[string]any)["id"].(float64)) != 7 {
		t.Fatalf("unexpected data: %v", body["data"])
	}
}
