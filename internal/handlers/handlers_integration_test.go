package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"porto/internal/handlers"
	"porto/internal/middleware"
	"porto/internal/models"
	"porto/internal/repositories"
	"porto/internal/services"
	"porto/pkg/identity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	adminToken = "admin-token"
	userToken  = "user-token"
	adminEmail = "admin@example.com"
	adminPass  = "correct-password"
)

var dbSeq int64

// newFakeIdentityServer stands in for the external identity provider. It
// knows two tokens (admin and plain user) and one valid credential pair.
func newFakeIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			switch token {
			case adminToken:
				json.NewEncoder(w).Encode(map[string]string{"id": "admin-id", "email": adminEmail})
			case userToken:
				json.NewEncoder(w).Encode(map[string]string{"id": "user-id", "email": "user@example.com"})
			default:
				w.WriteHeader(http.StatusUnauthorized)
			}
		case "/token":
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Email == adminEmail && creds.Password == adminPass {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"access_token":  adminToken,
					"refresh_token": "refresh-token",
					"user":          map[string]string{"id": "admin-id", "email": adminEmail},
				})
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setupApp wires the full application against in-memory sqlite and the fake
// identity provider, with notifications disabled.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:api%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AdminEntry{},
		&models.Project{},
		&models.Image{},
		&models.Message{},
		&models.Comment{},
		&models.Experience{},
		&models.BlogPost{},
	))

	// Seed the allowlist with the one admin the fake provider knows.
	require.NoError(t, db.Create(&models.AdminEntry{
		UserID:   "admin-id",
		Email:    adminEmail,
		Username: "admin",
	}).Error)

	identityClient := identity.NewClient(identity.Config{
		BaseURL:    newFakeIdentityServer(t).URL,
		ServiceKey: "test-service-key",
	})

	adminRepo := repositories.NewGORMAdminRepository(db)
	projectRepo := repositories.NewGORMProjectRepository(db)
	imageRepo := repositories.NewGORMImageRepository(db)
	messageRepo := repositories.NewGORMMessageRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)
	experienceRepo := repositories.NewGORMExperienceRepository(db)
	blogRepo := repositories.NewGORMBlogRepository(db)

	authService := services.NewAuthService(identityClient, adminRepo)
	projectService := services.NewProjectService(projectRepo)
	imageService := services.NewImageService(imageRepo)
	messageService := services.NewMessageService(messageRepo, nil)
	commentService := services.NewCommentService(commentRepo, nil)
	experienceService := services.NewExperienceService(experienceRepo)
	blogService := services.NewBlogService(blogRepo)
	statsService := services.NewStatsService(projectRepo, imageRepo, messageRepo, commentRepo, experienceRepo, blogRepo)

	app := fiber.New(fiber.Config{
		BodyLimit: services.MaxEditorUploadBytes + 1024*1024,
	})
	optionalIdentity := middleware.OptionalIdentity(authService)
	requireAdmin := middleware.RequireAdmin(authService)

	handlers.NewHealthHandler(map[string]bool{"DATABASE_URL": true}).RegisterRoutes(app)
	handlers.NewAuthHandler(authService).RegisterRoutes(app, optionalIdentity)
	handlers.NewProjectHandler(projectService).RegisterRoutes(app, requireAdmin)
	handlers.NewImageHandler(imageService).RegisterRoutes(app, requireAdmin)
	handlers.NewMessageHandler(messageService).RegisterRoutes(app, requireAdmin)
	handlers.NewCommentHandler(commentService).RegisterRoutes(app, requireAdmin)
	handlers.NewExperienceHandler(experienceService).RegisterRoutes(app, requireAdmin)
	handlers.NewBlogHandler(blogService, authService).RegisterRoutes(app, optionalIdentity, requireAdmin)
	handlers.NewStatsHandler(statsService).RegisterRoutes(app, requireAdmin)

	return app, db
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// doJSON issues a JSON request with an optional bearer token and decodes
// the response body into out (when non-nil).
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealthAndRoot(t *testing.T) {
	app, _ := setupApp(t)

	var health map[string]interface{}
	resp := doJSON(t, app, http.MethodGet, "/health", "", nil, &health)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, health["ok"])

	resp = doJSON(t, app, http.MethodGet, "/", "", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var diag map[string]interface{}
	resp = doJSON(t, app, http.MethodGet, "/diag", "", nil, &diag)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, diag["go"])
}

func TestAuthMeAndGuards(t *testing.T) {
	app, _ := setupApp(t)

	// Anonymous and malformed headers resolve to anonymous, never an error.
	for _, header := range []string{"", "garbage", "Basic abc", "Bearer unknown-token"} {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header: %q", header)
	}

	// Admin-gated route: anonymous is 401, valid non-admin is 403.
	resp := doJSON(t, app, http.MethodGet, "/stats", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/stats", userToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/stats", adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// /auth/me reports admin status.
	var me struct {
		User    models.User `json:"user"`
		IsAdmin bool        `json:"isAdmin"`
	}
	resp = doJSON(t, app, http.MethodGet, "/auth/me", adminToken, nil, &me)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin-id", me.User.ID)
	assert.True(t, me.IsAdmin)

	resp = doJSON(t, app, http.MethodGet, "/auth/me", userToken, nil, &me)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, me.IsAdmin)
}

func TestLoginFlow(t *testing.T) {
	app, _ := setupApp(t)

	// Direct email login.
	var login models.LoginResponse
	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": adminPass,
	}, &login)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, adminToken, login.AccessToken)
	assert.Equal(t, "admin-id", login.User.ID)

	// Username identifier resolves through the allowlist.
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "admin",
		"password":   adminPass,
	}, &login)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Unknown username.
	var failure map[string]string
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"identifier": "ghost",
		"password":   adminPass,
	}, &failure)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_username", failure["detail"])

	// Wrong password: the provider's message is forwarded.
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    adminEmail,
		"password": "wrong",
	}, &failure)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid login credentials", failure["detail"])

	// Missing password rejected at the boundary.
	resp = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]string{
		"email": adminEmail,
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type listEnvelope struct {
	Items []map[string]interface{} `json:"items"`
	Total int64                    `json:"total"`
}

func TestProjectsStackFilterScenario(t *testing.T) {
	app, _ := setupApp(t)

	stacks := [][]string{
		{"go", "rust"},
		{"go"},
		{"rust"},
		{"go", "rust", "svelte"},
	}
	for i, stack := range stacks {
		resp := doJSON(t, app, http.MethodPost, "/projects", adminToken, map[string]interface{}{
			"title":       fmt.Sprintf("Project %d", i),
			"description": "a project",
			"stack":       stack,
		}, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var list listEnvelope
	resp := doJSON(t, app, http.MethodGet, "/projects?stack=go,rust&limit=10", "", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), list.Total)
	assert.LessOrEqual(t, len(list.Items), 10)
	for _, item := range list.Items {
		stack := item["stack"].([]interface{})
		assert.Contains(t, stack, "go")
		assert.Contains(t, stack, "rust")
	}

	// Total is independent of the page window.
	resp = doJSON(t, app, http.MethodGet, "/projects?stack=go&limit=1&offset=1", "", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Items, 1)
}

func TestProjectCRUD(t *testing.T) {
	app, _ := setupApp(t)

	// Anonymous create is rejected before any work happens.
	resp := doJSON(t, app, http.MethodPost, "/projects", "", map[string]interface{}{
		"title": "x", "description": "y",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var created models.Project
	resp = doJSON(t, app, http.MethodPost, "/projects", adminToken, map[string]interface{}{
		"title":       "Featured One",
		"description": "desc",
		"featured":    true,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, created.ID)

	// Partial update by body id.
	var updated models.Project
	resp = doJSON(t, app, http.MethodPost, "/projects/update", adminToken, map[string]interface{}{
		"id":    created.ID,
		"title": "Renamed",
	}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "desc", updated.Description)

	// Update without id.
	resp = doJSON(t, app, http.MethodPost, "/projects/update", adminToken, map[string]interface{}{
		"title": "no id",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Update of a missing row.
	resp = doJSON(t, app, http.MethodPost, "/projects/update", adminToken, map[string]interface{}{
		"id": "missing", "title": "x",
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Featured shortcut only returns featured rows.
	var featured []models.Project
	resp = doJSON(t, app, http.MethodGet, "/projects/featured", "", nil, &featured)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, featured, 1)
	assert.True(t, featured[0].Featured)

	// Delete, then the listing is empty.
	resp = doJSON(t, app, http.MethodDelete, "/projects/"+created.ID, adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var list listEnvelope
	doJSON(t, app, http.MethodGet, "/projects", "", nil, &list)
	assert.Equal(t, int64(0), list.Total)
}

func TestBlogVisibilityAndSlug(t *testing.T) {
	app, _ := setupApp(t)

	// Slug is derived from the title; published defaults to false.
	var draft models.BlogPost
	resp := doJSON(t, app, http.MethodPost, "/blog/posts", adminToken, map[string]interface{}{
		"title":   "My First Post",
		"excerpt": "...",
	}, &draft)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "my-first-post", draft.Slug)
	assert.False(t, draft.Published)

	var published models.BlogPost
	resp = doJSON(t, app, http.MethodPost, "/blog/posts", adminToken, map[string]interface{}{
		"title":     "Public Post",
		"excerpt":   "...",
		"published": true,
	}, &published)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Anonymous listing only sees the published post.
	var list listEnvelope
	resp = doJSON(t, app, http.MethodGet, "/blog", "", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "public-post", list.Items[0]["slug"])

	// Valid non-admin sees the same gated listing.
	resp = doJSON(t, app, http.MethodGet, "/blog", userToken, nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), list.Total)

	// Admin listing sees everything.
	resp = doJSON(t, app, http.MethodGet, "/blog", adminToken, nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), list.Total)

	// The admin-only listing is rejected entirely for non-admins.
	resp = doJSON(t, app, http.MethodGet, "/blog/posts", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/blog/posts", userToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/blog/posts", adminToken, nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(2), list.Total)

	// Slug reads apply the same gate.
	resp = doJSON(t, app, http.MethodGet, "/blog/my-first-post", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/blog/my-first-post", userToken, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var fetched models.BlogPost
	resp = doJSON(t, app, http.MethodGet, "/blog/my-first-post", adminToken, nil, &fetched)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, draft.ID, fetched.ID)

	// Title change re-derives the slug when none is supplied...
	var renamed models.BlogPost
	resp = doJSON(t, app, http.MethodPost, "/blog/update", adminToken, map[string]interface{}{
		"id":    draft.ID,
		"title": "Second Thoughts",
	}, &renamed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "second-thoughts", renamed.Slug)

	// ...but an explicit slug in the same payload wins.
	resp = doJSON(t, app, http.MethodPost, "/blog/update", adminToken, map[string]interface{}{
		"id":    draft.ID,
		"title": "Third Thoughts",
		"slug":  "kept-slug",
	}, &renamed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "kept-slug", renamed.Slug)
	assert.Equal(t, "Third Thoughts", renamed.Title)
}

// multipartFile builds a multipart body with a single file part.
func multipartFile(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestImageRoundTrip(t *testing.T) {
	app, _ := setupApp(t)

	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x01, 0x02}
	body, contentType := multipartFile(t, "file", "pixel.png", "image/png", raw)

	req := httptest.NewRequest(http.MethodPost, "/images", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var uploaded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	id := uploaded["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "/images/"+id, uploaded["url"])

	// Fetch-by-id returns the exact bytes, content type and immutable cache
	// header, without auth.
	req = httptest.NewRequest(http.MethodGet, "/images/"+id, nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", resp.Header.Get("Cache-Control"))

	fetched, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, raw, fetched)

	// Admin listing carries metadata but never the payload.
	var list listEnvelope
	resp = doJSON(t, app, http.MethodGet, "/images", adminToken, nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Items, 1)
	assert.NotContains(t, list.Items[0], "data_uri")

	// Metadata update over both verbs.
	for _, method := range []string{http.MethodPatch, http.MethodPost} {
		var updated models.Image
		resp = doJSON(t, app, method, "/images/"+id, adminToken, map[string]interface{}{
			"filename": "renamed-" + method + ".png",
		}, &updated)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "method: %s", method)
		assert.Equal(t, "renamed-"+method+".png", updated.Filename)
	}
}

func TestImageUploadValidation(t *testing.T) {
	app, _ := setupApp(t)

	// Neither file nor data URI.
	resp := doJSON(t, app, http.MethodPost, "/images", adminToken, map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Invalid data URI syntax.
	var failure map[string]string
	resp = doJSON(t, app, http.MethodPost, "/images", adminToken, map[string]string{
		"data_uri": "not-a-data-uri",
	}, &failure)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_or_missing_data_uri", failure["detail"])

	// A well-formed data URI is accepted and served back decoded.
	resp = doJSON(t, app, http.MethodPost, "/images", adminToken, map[string]string{
		"data_uri":  "data:text/plain;base64,aGVsbG8=",
		"mime_type": "text/plain",
	}, &failure)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Missing image is 404, distinguishable from corrupt data.
	resp = doJSON(t, app, http.MethodGet, "/images/00000000-0000-0000-0000-000000000000", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestImageCorruptStoredData(t *testing.T) {
	app, db := setupApp(t)

	// A row whose stored value is not a well-formed data URI.
	corrupt := models.Image{ID: "corrupt-id", DataURI: "garbage"}
	require.NoError(t, db.Create(&corrupt).Error)

	var failure map[string]string
	resp := doJSON(t, app, http.MethodGet, "/images/corrupt-id", "", nil, &failure)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "corrupt_data_uri", failure["detail"])
}

func TestEditorUploadSizeCap(t *testing.T) {
	app, _ := setupApp(t)

	oversized := make([]byte, services.MaxEditorUploadBytes+1)
	body, contentType := multipartFile(t, "file", "big.jpg", "image/jpeg", oversized)

	req := httptest.NewRequest(http.MethodPost, "/images/upload-for-editor", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var failure map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&failure))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "file_too_large", failure["detail"])

	// An upload between Fiber's default 4MiB body limit and the cap must
	// reach the application and succeed, not die at the transport with 413.
	midsized := make([]byte, 6*1024*1024)
	body, contentType = multipartFile(t, "file", "mid.jpg", "image/jpeg", midsized)
	req = httptest.NewRequest(http.MethodPost, "/images/upload-for-editor", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// A small upload succeeds and returns only the URL.
	body, contentType = multipartFile(t, "file", "small.jpg", "image/jpeg", []byte{0xff, 0xd8})
	req = httptest.NewRequest(http.MethodPost, "/images/upload-for-editor", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var uploaded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.Contains(t, uploaded["url"], "/images/")
}

func TestMessagesFlow(t *testing.T) {
	app, _ := setupApp(t)

	// Public contact form.
	var created models.Message
	resp := doJSON(t, app, http.MethodPost, "/messages", "", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "hello there",
	}, &created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotZero(t, created.ID)
	assert.Nil(t, created.Read)

	doJSON(t, app, http.MethodPost, "/messages", "", map[string]string{"name": "B", "message": "second"}, nil)

	// Listing is admin only.
	resp = doJSON(t, app, http.MethodGet, "/messages", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var messages []models.Message
	resp = doJSON(t, app, http.MethodGet, "/messages", adminToken, nil, &messages)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, messages, 2)

	// Only the boolean read flag is updatable, over both verbs.
	var updated models.Message
	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/messages/%d", created.ID), adminToken, map[string]interface{}{
		"read": true,
	}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, updated.Read)
	assert.True(t, *updated.Read)

	resp = doJSON(t, app, http.MethodPost, fmt.Sprintf("/messages/%d", created.ID), adminToken, map[string]interface{}{
		"read": false,
	}, &updated)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, updated.Read)
	assert.False(t, *updated.Read)

	resp = doJSON(t, app, http.MethodPatch, fmt.Sprintf("/messages/%d", created.ID), adminToken, map[string]interface{}{
		"name": "not allowed",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Reset works without the backend procedures and leaves the table empty.
	resp = doJSON(t, app, http.MethodPost, "/messages/reset", adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/messages", adminToken, nil, &messages)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, messages)
}

func TestStatsCounts(t *testing.T) {
	app, db := setupApp(t)

	boolPtr := func(v bool) *bool { return &v }
	require.NoError(t, db.Create(&models.Message{Name: "a", Message: "m"}).Error)
	require.NoError(t, db.Create(&models.Message{Name: "b", Message: "m", Read: boolPtr(false)}).Error)
	require.NoError(t, db.Create(&models.Message{Name: "c", Message: "m", Read: boolPtr(true)}).Error)

	doJSON(t, app, http.MethodPost, "/projects", adminToken, map[string]interface{}{
		"title": "P", "description": "d",
	}, nil)
	doJSON(t, app, http.MethodPost, "/comments", "", map[string]string{"message": "hi"}, nil)
	doJSON(t, app, http.MethodPost, "/blog/posts", adminToken, map[string]interface{}{
		"title": "T", "excerpt": "e",
	}, nil)
	doJSON(t, app, http.MethodPost, "/experiences", adminToken, map[string]interface{}{
		"title": "Dev", "company": "Acme", "description": "d", "start_date": "2023-01",
	}, nil)

	var stats models.Stats
	resp := doJSON(t, app, http.MethodGet, "/stats", adminToken, nil, &stats)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), stats.Projects)
	assert.Equal(t, int64(0), stats.Images)
	assert.Equal(t, int64(2), stats.Unread) // read unset + read=false
	assert.Equal(t, int64(1), stats.Comments)
	assert.Equal(t, int64(1), stats.BlogPosts)
	assert.Equal(t, int64(1), stats.Experiences)
}

func TestCommentsFlow(t *testing.T) {
	app, _ := setupApp(t)

	// Blank messages are rejected.
	var failure map[string]string
	resp := doJSON(t, app, http.MethodPost, "/comments", "", map[string]string{"message": "   "}, &failure)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "message_required", failure["detail"])

	var created models.Comment
	resp = doJSON(t, app, http.MethodPost, "/comments", "", map[string]string{
		"author":  "Visitor",
		"message": "nice site",
	}, &created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotZero(t, created.ID)

	var list listEnvelope
	resp = doJSON(t, app, http.MethodGet, "/comments", "", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), list.Total)

	// Deletion is admin only.
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/comments/%d", created.ID), "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/comments/%d", created.ID), adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	doJSON(t, app, http.MethodPost, "/comments", "", map[string]string{"message": "again"}, nil)
	resp = doJSON(t, app, http.MethodPost, "/comments/reset", adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/comments", "", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), list.Total)
}

func TestExperiencesOrderedByStartDate(t *testing.T) {
	app, _ := setupApp(t)

	for _, exp := range []map[string]interface{}{
		{"title": "Old", "company": "A", "description": "d", "start_date": "2019-01"},
		{"title": "New", "company": "B", "description": "d", "start_date": "2024-06"},
		{"title": "Mid", "company": "C", "description": "d", "start_date": "2021-03"},
	} {
		resp := doJSON(t, app, http.MethodPost, "/experiences", adminToken, exp, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var list listEnvelope
	resp := doJSON(t, app, http.MethodGet, "/experiences", "", nil, &list)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(3), list.Total)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "New", list.Items[0]["title"])
	assert.Equal(t, "Mid", list.Items[1]["title"])
	assert.Equal(t, "Old", list.Items[2]["title"])
}

func TestListBoundsRejected(t *testing.T) {
	app, _ := setupApp(t)

	cases := []struct {
		path string
	}{
		{"/projects?limit=101"},  // ceiling 100
		{"/projects?limit=0"},
		{"/projects?offset=-1"},
		{"/comments?limit=201"},    // ceiling 200
		{"/experiences?limit=201"}, // ceiling 200
		{"/blog?limit=51"},         // public ceiling 50
	}
	for _, tc := range cases {
		resp := doJSON(t, app, http.MethodGet, tc.path, "", nil, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path: %s", tc.path)
	}

	// The admin blog listing has its own, higher ceiling.
	resp := doJSON(t, app, http.MethodGet, "/blog/posts?limit=200", adminToken, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/blog/posts?limit=201", adminToken, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
