package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"creme-menu/internal/config"
	"creme-menu/internal/httpx/kit/testutil"
	"creme-menu/internal/httpx/mw"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Algo = "HS256"
	cfg.JWT.HSSecret = "test-secret"
	cfg.JWT.Issuer = "test"
	cfg.JWT.Audience = "test"
	cfg.JWT.AccessMin = 15
	cfg.JWT.RefreshDays = 7
	cfg.Admin.Username = "admin"
	hash, err := HashPassword("P@ssw0rd")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cfg.Admin.PasswordHash = hash
	return cfg
}

func newTestApp(cfg *config.Config) *fiber.App {
	cfgFn := func() *config.Config { return cfg }
	return testutil.NewApp(
		func(app *fiber.App) { app.Use(mw.JWTMiddlewareDynamic(Parser(cfgFn))) },
		func(app *fiber.App) { app.Post("/auth/login", LoginHandler(cfgFn)) },
		func(app *fiber.App) { app.Post("/auth/refresh", RefreshHandler(cfgFn)) },
		func(app *fiber.App) { app.Get("/auth/me", MeHandler()) },
	)
}

func login(t *testing.T, app *fiber.App, user, pass string) *http.Response {
	t.Helper()
	b, _ := json.Marshal(LoginRequest{Username: user, Password: pass})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	return res
}

func TestLogin_IssuesSuperuserToken(t *testing.T) {
	cfg := newTestConfig(t)
	app := newTestApp(cfg)

	res := login(t, app, "admin", "P@ssw0rd")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
	var env struct {
		Code string
		Data TokenResponse
	}
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.AccessToken == "" || env.Data.ExpiresIn != 15*60 {
		t.Fatalf("unexpected token: %+v", env.Data)
	}
	claims, err := ParseAndValidate(cfg, env.Data.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user:admin" || len(claims.Roles) != 1 || claims.Roles[0] != mw.RoleSuperuser {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+env.Data.AccessToken)
	res, _ = app.Test(req)
	var me struct{ Data MeResponse }
	_ = json.NewDecoder(res.Body).Decode(&me)
	if res.StatusCode != http.StatusOK || !me.Data.Superuser {
		t.Fatalf("me: status=%d %+v", res.StatusCode, me.Data)
	}
}

func TestLogin_Rejects(t *testing.T) {
	app := newTestApp(newTestConfig(t))
	if res := login(t, app, "admin", "wrong"); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: status=%d", res.StatusCode)
	}
	if res := login(t, app, "root", "P@ssw0rd"); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong user: status=%d", res.StatusCode)
	}
	if res := login(t, app, "", ""); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty body: status=%d", res.StatusCode)
	}
}

func TestRefresh(t *testing.T) {
	cfg := newTestConfig(t)
	app := newTestApp(cfg)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	if res, _ := app.Test(req); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no cookie: status=%d", res.StatusCode)
	}

	rt, err := SignRefresh(cfg, adminPrincipal(cfg))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: rt})
	res, _ := app.Test(req)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}

	other, _ := SignRefresh(cfg, Principal{Subject: "user:ghost"})
	req = httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: other})
	if res, _ := app.Test(req); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unknown subject: status=%d", res.StatusCode)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword("s3cret", hash) || VerifyPassword("nope", hash) || VerifyPassword("s3cret", "plain") {
		t.Fatalf("verify mismatch for %s", hash)
	}
}

func TestParse_RejectsForeignAudience(t *testing.T) {
	cfg := newTestConfig(t)
	tok, _ := SignAccess(cfg, adminPrincipal(cfg))
	other := *cfg
	other.JWT.Audience = "elsewhere"
	if _, err := ParseAndValidate(&other, tok); err == nil {
		t.Fatalf("audience must be checked")
	}
}
