package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppandzharov/blogadmin/internal/common"
	"github.com/ppandzharov/blogadmin/internal/logging"
	"github.com/ppandzharov/blogadmin/internal/server/config"
	"github.com/ppandzharov/blogadmin/internal/server/models"
	"github.com/ppandzharov/blogadmin/internal/server/services"
)

type stubAuthService struct {
	loginResult   *services.LoginResult
	loginErr      error
	validAdminID  string
	validToken    string
	logoutErr     error
	changePassErr error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginResult, nil
}

func (s *stubAuthService) Authenticate(ctx context.Context, adminID, token string) error {
	if adminID == s.validAdminID && token == s.validToken && adminID != "" {
		return nil
	}
	return common.ErrorUnauthorized
}

func (s *stubAuthService) Logout(ctx context.Context, adminID string) error {
	return s.logoutErr
}

func (s *stubAuthService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	return s.changePassErr
}

type stubPostService struct {
	posts      map[string]*models.Post
	listResult []*models.Post
	listErr    error
}

func (s *stubPostService) Create(ctx context.Context, in services.PostInput) (*models.Post, error) {
	now := time.Now()
	return &models.Post{ID: "p1", Title: in.Title, Slug: in.Slug, Body: in.Body,
		Published: in.Published, CreatedAt: now, UpdatedAt: now}, nil
}

func (s *stubPostService) Get(ctx context.Context, id string) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (s *stubPostService) List(ctx context.Context, publishedOnly bool) ([]*models.Post, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	if !publishedOnly {
		return s.listResult, nil
	}
	var out []*models.Post
	for _, p := range s.listResult {
		if p.Published {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubPostService) Update(ctx context.Context, id string, in services.PostInput) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	updated := *p
	updated.Title = in.Title
	updated.Slug = in.Slug
	updated.Body = in.Body
	updated.Published = in.Published
	return &updated, nil
}

func (s *stubPostService) Delete(ctx context.Context, id string) error {
	if _, ok := s.posts[id]; !ok {
		return common.ErrorNotFound
	}
	return nil
}

func (s *stubPostService) PreviewToken(ctx context.Context, postID string) (string, error) {
	if _, ok := s.posts[postID]; !ok {
		return "", common.ErrorNotFound
	}
	return "preview-token-" + postID, nil
}

func (s *stubPostService) FromPreviewToken(ctx context.Context, token string) (*models.Post, error) {
	id, ok := strings.CutPrefix(token, "preview-token-")
	if !ok {
		return nil, common.ErrInvalidPreviewToken
	}
	return s.Get(ctx, id)
}

type stubImageService struct {
	err error
}

func (s *stubImageService) PresignUpload(ctx context.Context, filename string) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	return "images/2026/09/abc-" + filename, "https://storage.example.com/upload", nil
}

func (s *stubImageService) ImageURL(key string) string {
	return "https://storage.example.com/" + key
}

func newTestServer(t *testing.T, as AuthService, ps PostService, is ImageService) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SiteURL = "https://blog.example.com"
	if as == nil {
		as = &stubAuthService{}
	}
	if ps == nil {
		ps = &stubPostService{}
	}
	if is == nil {
		is = &stubImageService{}
	}
	l := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewServer(cfg, l, as, ps, is)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func adminCookie(adminID, token string) *http.Cookie {
	return &http.Cookie{Name: adminCookieName, Value: adminID + "&" + token}
}

func TestLogin_Success_SetsCookie(t *testing.T) {
	expiry := time.Now().Add(72 * time.Hour)
	as := &stubAuthService{loginResult: &services.LoginResult{
		AdminID: "a1", Token: strings.Repeat("x", 40), Expiry: expiry,
	}}
	srv := newTestServer(t, as, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/users/login",
		strings.NewReader(`{"email":"admin@example.com","password":"secret"}`))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, decodeBody(t, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, adminCookieName, cookies[0].Name)
	assert.Equal(t, "a1&"+strings.Repeat("x", 40), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.WithinDuration(t, expiry, cookies[0].Expires, time.Second)
}

func TestLogin_Failure_NoCookie(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"unknown credentials", `{"email":"a@b.c","password":"wrong"}`, common.ErrorUnauthorized},
		{"malformed body", `{not json`, nil},
		{"empty email", `{"email":"","password":"x"}`, nil},
		{"empty password", `{"email":"a@b.c","password":""}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &stubAuthService{loginErr: tt.err}, nil, nil)

			req := httptest.NewRequest(http.MethodPut, "/users/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, map[string]any{"success": false}, decodeBody(t, rec))
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestAuthenticate_ViaCookie(t *testing.T) {
	as := &stubAuthService{validAdminID: "a1", validToken: "tok"}
	srv := newTestServer(t, as, nil, nil)

	tests := []struct {
		name    string
		cookie  *http.Cookie
		success bool
	}{
		{"valid cookie", adminCookie("a1", "tok"), true},
		{"wrong token", adminCookie("a1", "other"), false},
		{"malformed cookie", &http.Cookie{Name: adminCookieName, Value: "no-separator"}, false},
		{"no cookie", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/authenticate", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, map[string]any{"success": tt.success}, decodeBody(t, rec))
		})
	}
}

func TestRequireAdmin_RejectsWithoutSession(t *testing.T) {
	srv := newTestServer(t, &stubAuthService{}, nil, nil)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/users/logout"},
		{http.MethodPut, "/users/change-password"},
		{http.MethodGet, "/posts"},
		{http.MethodPost, "/posts"},
		{http.MethodDelete, "/posts/p1"},
		{http.MethodPost, "/images/presign"},
	}

	for _, route := range protected {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, map[string]any{"success": false}, decodeBody(t, rec))
		})
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	as := &stubAuthService{validAdminID: "a1", validToken: "tok"}
	srv := newTestServer(t, as, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/users/logout", nil)
	req.AddCookie(adminCookie("a1", "tok"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, decodeBody(t, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, adminCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestRemoveCookie_PublicAndClears(t *testing.T) {
	srv := newTestServer(t, &stubAuthService{}, nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/users/remove-admin-user-cookie", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, decodeBody(t, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestChangePassword_ResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want map[string]any
	}{
		{"success", nil, map[string]any{"success": true}},
		{"wrong current password", common.ErrInvalidCurrentPassword,
			map[string]any{"invalidPasswordCredentialError": true}},
		{"internal failure", common.ErrorInternal, map[string]any{"submitError": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			as := &stubAuthService{validAdminID: "a1", validToken: "tok", changePassErr: tt.err}
			srv := newTestServer(t, as, nil, nil)

			req := httptest.NewRequest(http.MethodPut, "/users/change-password",
				strings.NewReader(`{"currentPassword":"old","newPassword":"new"}`))
			req.AddCookie(adminCookie("a1", "tok"))
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decodeBody(t, rec))
		})
	}
}

func TestPosts_CRUD(t *testing.T) {
	as := &stubAuthService{validAdminID: "a1", validToken: "tok"}
	now := time.Now()
	ps := &stubPostService{posts: map[string]*models.Post{
		"p1": {ID: "p1", Title: "First", Slug: "first", Published: true, CreatedAt: now, UpdatedAt: now},
	}}
	srv := newTestServer(t, as, ps, nil)

	t.Run("create", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/posts",
			strings.NewReader(`{"title":"New","slug":"new","body":"text","published":false}`))
		req.AddCookie(adminCookie("a1", "tok"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "New", body["title"])
		assert.NotEmpty(t, body["id"])
	})

	t.Run("create rejects missing title", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/posts",
			strings.NewReader(`{"slug":"new"}`))
		req.AddCookie(adminCookie("a1", "tok"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get existing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/p1", nil)
		req.AddCookie(adminCookie("a1", "tok"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "First", decodeBody(t, rec)["title"])
	})

	t.Run("get missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/posts/nope", nil)
		req.AddCookie(adminCookie("a1", "tok"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/posts/nope",
			strings.NewReader(`{"title":"T","slug":"t"}`))
		req.AddCookie(adminCookie("a1", "tok"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete existing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/posts/p1", nil)
		req.AddCookie(adminCookie("a1", "tok"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]any{"success": true}, decodeBody(t, rec))
	})
}

func TestPreview_RoundTrip(t *testing.T) {
	as := &stubAuthService{validAdminID: "a1", validToken: "tok"}
	now := time.Now()
	ps := &stubPostService{posts: map[string]*models.Post{
		"p1": {ID: "p1", Title: "Draft", Slug: "draft", CreatedAt: now, UpdatedAt: now},
	}}
	srv := newTestServer(t, as, ps, nil)

	req := httptest.NewRequest(http.MethodPost, "/posts/p1/preview-token", nil)
	req.AddCookie(adminCookie("a1", "tok"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	// The preview endpoint itself is public.
	req = httptest.NewRequest(http.MethodGet, "/posts/preview?token="+token, nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Draft", decodeBody(t, rec)["title"])
}

func TestPreview_BadToken(t *testing.T) {
	srv := newTestServer(t, nil, &stubPostService{}, nil)

	for _, q := range []string{"", "?token=garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/posts/preview"+q, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestPresignImage(t *testing.T) {
	as := &stubAuthService{validAdminID: "a1", validToken: "tok"}
	srv := newTestServer(t, as, nil, &stubImageService{})

	req := httptest.NewRequest(http.MethodPost, "/images/presign",
		strings.NewReader(`{"filename":"cat.png"}`))
	req.AddCookie(adminCookie("a1", "tok"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "https://storage.example.com/upload", body["uploadUrl"])
	assert.Contains(t, body["publicUrl"], "cat.png")
}

func TestSitemap_PublishedOnly(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	ps := &stubPostService{listResult: []*models.Post{
		{ID: "p1", Slug: "hello-world", Published: true, UpdatedAt: now},
		{ID: "p2", Slug: "secret-draft", Published: false, UpdatedAt: now},
	}}
	srv := newTestServer(t, nil, ps, nil)

	req := httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://blog.example.com</loc>")
	assert.Contains(t, body, "<loc>https://blog.example.com/posts/hello-world</loc>")
	assert.Contains(t, body, "<lastmod>2026-08-15</lastmod>")
	assert.NotContains(t, body, "secret-draft")
}
