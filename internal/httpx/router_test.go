package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"creme-menu/internal/apps"
	"creme-menu/internal/config"
	"creme-menu/internal/db"
	"creme-menu/internal/httpx/auth"
	"creme-menu/internal/httpx/kit"
	"creme-menu/internal/menu"
	"creme-menu/internal/menuconfig"
	"creme-menu/internal/metric"
)

func newTestServer(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()
	cfg := &config.Config{}
	cfg.DB.Driver = "sqlite"
	cfg.DB.URL = fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	cfg.DB.MaxOpenConns = 1
	cfg.DB.MaxIdleConns = 1
	cfg.JWT.HSSecret = "e2e-secret"
	cfg.JWT.Issuer = "creme-menu"
	cfg.JWT.Audience = "creme"
	cfg.JWT.AccessMin = 5
	cfg.JWT.RefreshDays = 1
	cfg.Admin.Username = "admin"
	cfg.RateLimit.WindowSec = 60
	cfg.RateLimit.Max = 1000
	hash, err := auth.HashPassword("pw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg.Admin.PasswordHash = hash

	drv, closeFn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(closeFn)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Migrate(ctx, drv); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cat, err := apps.Bootstrap()
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	svc := menuconfig.NewService(drv, cat.Registry)
	if _, err := svc.Seed(ctx, apps.DefaultMenu()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	m := metric.New()
	app := fiber.New(fiber.Config{ErrorHandler: kit.ErrorHandler()})
	RegisterCommonMiddlewares(app, m)
	Register(app, Providers{
		Config:  func() *config.Config { return cfg },
		Service: svc,
		Forms:   cat.Forms,
		Trash:   menu.StaticTrash(0),
		Metrics: m,
	})
	return app, cfg
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var b []byte
	if body != nil {
		b, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	return res
}

func TestE2E_Health(t *testing.T) {
	app, _ := newTestServer(t)
	res := do(t, app, http.MethodGet, "/health", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	var body struct {
		Code string         `json:"code"`
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Code != "OK" || body.Data["status"] != "ok" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestE2E_LoginThenMenu(t *testing.T) {
	app, _ := newTestServer(t)

	if res := do(t, app, http.MethodGet, "/api/v1/menu", "", nil); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous menu: status=%d", res.StatusCode)
	}

	res := do(t, app, http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Username: "admin", Password: "pw"})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login: status=%d", res.StatusCode)
	}
	var login struct{ Data auth.TokenResponse }
	_ = json.NewDecoder(res.Body).Decode(&login)
	token := login.Data.AccessToken

	res = do(t, app, http.MethodGet, "/api/v1/menu", token, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("menu: status=%d", res.StatusCode)
	}
	var out struct {
		Data struct {
			HTML string `json:"html"`
		}
	}
	_ = json.NewDecoder(res.Body).Decode(&out)
	if !strings.HasPrefix(out.Data.HTML, `<ul class="ui-creme-navigation">`) || !strings.Contains(out.Data.HTML, "/persons/contacts") {
		t.Fatalf("unexpected html: %s", out.Data.HTML)
	}

	// The superuser passes the admin role check.
	if res := do(t, app, http.MethodGet, "/api/v1/admin/menu", token, nil); res.StatusCode != http.StatusOK {
		t.Fatalf("admin tree: status=%d", res.StatusCode)
	}

	res = do(t, app, http.MethodGet, "/metrics", "", nil)
	raw, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(raw), `menu_renders_total{outcome="ok"} 1`) {
		t.Fatalf("render not counted:\n%s", raw)
	}
	if !strings.Contains(string(raw), "menu_http_requests_total") {
		t.Fatalf("requests not counted")
	}
}

func TestE2E_UnknownRouteEnvelope(t *testing.T) {
	app, _ := newTestServer(t)
	res := do(t, app, http.MethodGet, "/nope", "", nil)
	var body map[string]any
	_ = json.NewDecoder(res.Body).Decode(&body)
	if res.StatusCode != http.StatusNotFound || body["code"] != "E_NOT_FOUND" {
		t.Fatalf("status=%d body=%v", res.StatusCode, body)
	}
}
