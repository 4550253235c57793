package menus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"creme-menu/internal/apps"
	"creme-menu/internal/apps/persons"
	"creme-menu/internal/entry"
	"creme-menu/internal/httpx/kit/testutil"
	"creme-menu/internal/httpx/mw"
	"creme-menu/internal/menu"
	"creme-menu/internal/metric"
)

type recordsSource struct {
	registry *entry.Registry
	records  []entry.Record
	err      error
}

func (s recordsSource) Menu(context.Context) (*menu.Menu, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.registry.Menu(s.records)
}

type memRecent map[string][]menu.RecentEntity

func (m memRecent) Push(_ context.Context, userID string, e menu.RecentEntity) error {
	m[userID] = append([]menu.RecentEntity{e}, m[userID]...)
	return nil
}

func (m memRecent) List(_ context.Context, userID string) ([]menu.RecentEntity, error) {
	return m[userID], nil
}

func parentID(id int) *int { return &id }

func newDeps(t *testing.T) (Deps, memRecent) {
	t.Helper()
	cat, err := apps.Bootstrap()
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	recent := memRecent{}
	return Deps{
		Source: recordsSource{registry: cat.Registry, records: []entry.Record{
			{ID: 1, EntryID: entry.CremeID, Order: 1},
			{ID: 2, EntryID: entry.ContainerID, Order: 2, Name: "Directory"},
			{ID: 3, EntryID: persons.ContactsID, ParentID: parentID(2), Order: 1},
			{ID: 4, EntryID: entry.RecentEntitiesID, Order: 3},
		}},
		Forms:   cat.Forms,
		Recent:  recent,
		Trash:   menu.StaticTrash(3),
		Metrics: metric.New(),
	}, recent
}

var principals = map[string]*mw.AuthContext{
	"sales": {Subject: "user:sales", Kind: "user", Perms: []string{"persons", "persons.add_contact"}},
	"guest": {Subject: "user:guest", Kind: "user"},
	"root":  {Subject: "user:root", Kind: "user", Roles: []string{mw.RoleSuperuser}},
}

func newApp(d Deps) *fiber.App {
	return testutil.NewApp(func(app *fiber.App) {
		app.Use(mw.JWTMiddlewareDynamic(func(token string) (*mw.AuthContext, error) {
			if ac, ok := principals[token]; ok {
				return ac, nil
			}
			return nil, errors.New("unknown token")
		}))
		app.Get("/menu", MenuHandler(d))
		app.Get("/menu/creation-grid", CreationGridHandler(d))
		app.Post("/menu/recent", RecentHandler(d))
	})
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request err: %v", err)
	}
	out := map[string]any{}
	_ = json.NewDecoder(res.Body).Decode(&out)
	return res.StatusCode, out
}

func htmlOf(t *testing.T, body map[string]any) string {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("no data: %v", body)
	}
	return data["html"].(string)
}

func TestMenu_RendersForPrincipal(t *testing.T) {
	d, recent := newDeps(t)
	recent["user:sales"] = []menu.RecentEntity{{Name: "Alice", URL: "/persons/contact/1"}}
	app := newApp(d)

	status, body := call(t, app, http.MethodGet, "/menu", "sales", nil)
	if status != http.StatusOK {
		t.Fatalf("status=%d body=%v", status, body)
	}
	html := htmlOf(t, body)
	for _, want := range []string{
		`<ul class="ui-creme-navigation">`,
		`<a href="/persons/contacts">Contacts</a>`,
		"3 entities",
		`<a href="/persons/contact/1">Alice</a>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("missing %q in %s", want, html)
		}
	}
	if _, ok := body["data"].(map[string]any)["dump"]; ok {
		t.Fatalf("dump is reserved to superusers")
	}

	_, body = call(t, app, http.MethodGet, "/menu", "guest", nil)
	html = htmlOf(t, body)
	if strings.Contains(html, `<a href="/persons/contacts">`) || !strings.Contains(html, "forbidden") {
		t.Fatalf("guest must not get the contacts link: %s", html)
	}
	if !strings.Contains(html, "No recently visited entity") {
		t.Fatalf("guest has no recent entity: %s", html)
	}
}

func TestMenu_DebugDumpForSuperuser(t *testing.T) {
	d, _ := newDeps(t)
	status, body := call(t, newApp(d), http.MethodGet, "/menu?debug=true", "root", nil)
	if status != http.StatusOK {
		t.Fatalf("status=%d", status)
	}
	dump, _ := body["data"].(map[string]any)["dump"].(string)
	if !strings.Contains(dump, `id="creme_core-creme"`) {
		t.Fatalf("unexpected dump: %q", dump)
	}
}

func TestMenu_Errors(t *testing.T) {
	d, _ := newDeps(t)
	if status, _ := call(t, newApp(d), http.MethodGet, "/menu", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("anonymous: status=%d", status)
	}
	d.Source = recordsSource{err: errors.New("db down")}
	status, body := call(t, newApp(d), http.MethodGet, "/menu", "sales", nil)
	if status != http.StatusInternalServerError || body["code"] != "E_INTERNAL" {
		t.Fatalf("status=%d body=%v", status, body)
	}
}

func TestCreationGrid(t *testing.T) {
	d, _ := newDeps(t)
	status, body := call(t, newApp(d), http.MethodGet, "/menu/creation-grid", "sales", nil)
	if status != http.StatusOK {
		t.Fatalf("status=%d", status)
	}
	rows := body["data"].([]any)
	if len(rows) != 1 {
		t.Fatalf("one group expected: %v", rows)
	}
	cell := rows[0].([]any)[0].(map[string]any)
	links := cell["links"].([]any)
	if cell["label"] != "Directory" || len(links) != 2 {
		t.Fatalf("unexpected cell: %v", cell)
	}
	if links[0].(map[string]any)["url"] != "/persons/contact/add" {
		t.Fatalf("sales may create contacts: %v", links[0])
	}
	if _, ok := links[1].(map[string]any)["url"]; ok {
		t.Fatalf("sales may not create organisations: %v", links[1])
	}
}

func TestRecent_Push(t *testing.T) {
	d, recent := newDeps(t)
	app := newApp(d)

	status, _ := call(t, app, http.MethodPost, "/menu/recent", "sales", RecentRequest{Name: "Acme", URL: "/persons/organisation/7"})
	if status != http.StatusNoContent {
		t.Fatalf("status=%d", status)
	}
	if got := recent["user:sales"]; len(got) != 1 || got[0].Name != "Acme" {
		t.Fatalf("unexpected recent: %v", got)
	}

	status, body := call(t, app, http.MethodPost, "/menu/recent", "sales", RecentRequest{Name: "Acme", URL: "http://evil"})
	if status != http.StatusBadRequest {
		t.Fatalf("status=%d body=%v", status, body)
	}

	d.Recent = nil
	if status, _ := call(t, newApp(d), http.MethodPost, "/menu/recent", "sales", RecentRequest{Name: "A", URL: "/a"}); status != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", status)
	}
}
