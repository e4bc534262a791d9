package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"dugun.link/configs"
	"dugun.link/database/dbtest"
	"dugun.link/models"
	"dugun.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "sifre-123"

type testServer struct {
	app      *fiber.App
	deps     *routes.Dependencies
	template *models.Template
}

func newTestServer(t *testing.T, tweak func(*configs.AppConfig)) *testServer {
	t.Helper()
	cfg := configs.AppConfig{
		Env:               "test",
		SessionExpiration: time.Hour,
		RenderRateLimit:   100,
		RSVPRateLimit:     100,
		RateLimitWindow:   time.Minute,
		ViewQueueSize:     16,
	}
	if tweak != nil {
		tweak(&cfg)
	}
	deps := routes.NewDependencies(dbtest.New(t), cfg, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = deps.Recorder.Close(ctx)
	})

	template := &models.Template{Name: "klasik", HTMLPath: "/static/templates/klasik/index.html", CSSPath: "/static/templates/klasik/style.css", IsActive: true}
	require.NoError(t, deps.Templates.Create(context.Background(), template))
	return &testServer{app: routes.NewApp(deps), deps: deps, template: template}
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonRequest(method, target string, body interface{}, cookie *http.Cookie) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return req
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// login kullanıcı oluşturur, giriş yapar ve oturum çerezini döndürür.
func (s *testServer) login(t *testing.T, email string, active bool) *http.Cookie {
	t.Helper()
	_, err := s.deps.Auth.Register(context.Background(), "Test", email, testPassword, active)
	require.NoError(t, err)

	resp := s.do(t, jsonRequest(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": testPassword}, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "dugun_session" {
			return c
		}
	}
	t.Fatal("oturum çerezi dönmedi")
	return nil
}

func (s *testServer) createPublished(t *testing.T, cookie *http.Cookie) (uint, string) {
	t.Helper()
	resp := s.do(t, jsonRequest(http.MethodPost, "/panel/invitations", map[string]interface{}{
		"template_id": s.template.ID,
		"groom_name":  "Ahmet",
		"bride_name":  "Ayşe",
	}, cookie))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created models.Invitation
	decode(t, resp, &created)
	assert.Equal(t, models.InvitationStatusDraft, created.Status)

	resp = s.do(t, jsonRequest(http.MethodPost, fmt.Sprintf("/panel/invitations/%d/publish", created.ID), nil, cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var published models.Invitation
	decode(t, resp, &published)
	require.NotNil(t, published.UniqueURL)
	return published.ID, *published.UniqueURL
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	resp := s.do(t, jsonRequest(http.MethodGet, "/panel/invitations", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	cookie := s.login(t, "gelin@dugun.link", true)

	resp = s.do(t, jsonRequest(http.MethodPost, "/auth/login", map[string]string{"email": "gelin@dugun.link", "password": "yanlis"}, nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, jsonRequest(http.MethodGet, "/auth/me", nil, cookie))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me map[string]interface{}
	decode(t, resp, &me)
	assert.Equal(t, "gelin@dugun.link", me["email"])
	assert.NotContains(t, me, "password_hash")

	resp = s.do(t, jsonRequest(http.MethodPost, "/auth/logout", nil, cookie))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = s.do(t, jsonRequest(http.MethodGet, "/auth/me", nil, cookie))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInvitationLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	owner := s.login(t, "sahip@dugun.link", true)
	stranger := s.login(t, "yabanci@dugun.link", true)
	id, slug := s.createPublished(t, owner)

	resp := s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/panel/invitations/%d", id), nil, stranger))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = s.do(t, jsonRequest(http.MethodGet, "/panel/invitations/999999", nil, owner))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = s.do(t, jsonRequest(http.MethodGet, "/panel/invitations/abc", nil, owner))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	page := httptest.NewRequest(http.MethodGet, "/i/"+slug, nil)
	page.Header.Set(fiber.HeaderAccept, fiber.MIMETextHTML)
	page.Header.Set(fiber.HeaderUserAgent, "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	resp = s.do(t, page)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Ahmet &amp; Ayşe")
	assert.Contains(t, string(body), "/static/templates/klasik/style.css")

	resp = s.do(t, jsonRequest(http.MethodPost, fmt.Sprintf("/panel/invitations/%d/unpublish", id), nil, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	page = httptest.NewRequest(http.MethodGet, "/i/"+slug, nil)
	page.Header.Set(fiber.HeaderAccept, fiber.MIMETextHTML)
	resp = s.do(t, page)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	resp = s.do(t, jsonRequest(http.MethodDelete, fmt.Sprintf("/panel/invitations/%d", id), nil, owner))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRsvpSubmission(t *testing.T) {
	s := newTestServer(t, nil)
	owner := s.login(t, "sahip@dugun.link", true)
	id, slug := s.createPublished(t, owner)

	resp := s.do(t, jsonRequest(http.MethodPost, "/i/"+slug+"/rsvp", map[string]string{"name": "Zeynep", "message": "Mutluluklar!"}, nil))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	form := url.Values{"name": {"Can"}, "message": {"Tebrikler"}}
	req := httptest.NewRequest(http.MethodPost, "/i/"+slug+"/rsvp", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp = s.do(t, req)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/i/"+slug+"?rsvp=ok", resp.Header.Get(fiber.HeaderLocation))

	resp = s.do(t, jsonRequest(http.MethodPost, "/i/"+slug+"/rsvp", map[string]string{"name": "", "message": "x"}, nil))
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var invalid struct {
		Fields map[string]string `json:"fields"`
	}
	decode(t, resp, &invalid)
	assert.Contains(t, invalid.Fields, "name")

	resp = s.do(t, jsonRequest(http.MethodPost, "/i/bilinmeyen/rsvp", map[string]string{"name": "", "message": ""}, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/panel/invitations/%d/rsvps", id), nil, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Data []models.Rsvp `json:"data"`
		Meta struct {
			TotalItems int64 `json:"total_items"`
		} `json:"meta"`
	}
	decode(t, resp, &list)
	assert.Equal(t, int64(2), list.Meta.TotalItems)
	require.Len(t, list.Data, 2)
	assert.Equal(t, "Can", list.Data[0].Name)
}

func TestRsvpRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *configs.AppConfig) { cfg.RSVPRateLimit = 2 })
	owner := s.login(t, "sahip@dugun.link", true)
	_, slug := s.createPublished(t, owner)

	for i := 0; i < 2; i++ {
		resp := s.do(t, jsonRequest(http.MethodPost, "/i/"+slug+"/rsvp", map[string]string{"name": "Ali", "message": "Tebrikler"}, nil))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp := s.do(t, jsonRequest(http.MethodPost, "/i/"+slug+"/rsvp", map[string]string{"name": "Ali", "message": "Tebrikler"}, nil))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))

	// Sayfa görüntüleme ayrı bir limitle sayılır.
	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/i/"+slug, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRenderRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *configs.AppConfig) { cfg.RenderRateLimit = 3 })
	owner := s.login(t, "sahip@dugun.link", true)
	_, slug := s.createPublished(t, owner)

	for i := 0; i < 3; i++ {
		resp := s.do(t, httptest.NewRequest(http.MethodGet, "/i/"+slug, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/i/"+slug, nil))
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))

	// LCV gönderimi sayfa limitinden etkilenmez.
	resp = s.do(t, jsonRequest(http.MethodPost, "/i/"+slug+"/rsvp", map[string]string{"name": "Ali", "message": "Tebrikler"}, nil))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGuestImportExport(t *testing.T) {
	s := newTestServer(t, nil)
	owner := s.login(t, "sahip@dugun.link", true)
	id, _ := s.createPublished(t, owner)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "misafirler.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("name,category,whatsapp\nAyşe,family,+905321112233\nCan,friend,\n"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/panel/invitations/%d/guests/import", id), &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	req.AddCookie(owner)
	resp := s.do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var imported map[string]int
	decode(t, resp, &imported)
	assert.Equal(t, 2, imported["imported"])

	resp = s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/panel/invitations/%d/guests/export", id), nil, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	csvBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "name,category,whatsapp\nAyşe,family,+905321112233\nCan,friend,\n", string(csvBody))

	resp = s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/panel/invitations/%d/statistics", id), nil, owner))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats map[string]interface{}
	decode(t, resp, &stats)
	assert.EqualValues(t, 2, stats["guest_count"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/bilinmeyen", nil)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMETextHTML)
	resp := s.do(t, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	resp = s.do(t, jsonRequest(http.MethodGet, "/bilinmeyen", nil, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/json")
}
