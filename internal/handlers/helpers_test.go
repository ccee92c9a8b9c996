package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sway-pr/config"
	"sway-pr/internal/testkit"
	"sway-pr/internal/wsnotify"
)

const (
	testUser     = "press"
	testPassword = "correct horse"

	contactsMapping = `{"name":"name","email":"Email","outlet":"outletName","city":"City"}`
	journalistsCSV  = "name,email,outlet,city\n" +
		"Jane Jones,jane@daily.example,Test Outlet 1,London\n" +
		"Bob Brown,bob@daily.example,Test Outlet 1,London\n" +
		"No Mail,,Another Outlet,Paris\n" +
		"Bad Mail,not valid,Test Outlet 2,\n"
	mediaTitlesCSV = "name,email,outlet,city\n" +
		"Cara Clark,cara@weekly.example,Test Outlet 2,Berlin\n" +
		"Dan Diaz,dan@weekly.example,Another Outlet,London\n"
)

type testAPI struct {
	handler *HTTPHandler
	router  http.Handler
	cookie  *http.Cookie
}

func testConfig() *config.Config {
	return &config.Config{
		Import: config.ImportConfig{MaxUploadSize: 1 << 20, FileExtension: ".csv"},
		Search: config.SearchConfig{FuzzyThreshold: 80, FuzzyLimit: 10, DefaultPageSize: 20, MaxPageSize: 100},
		Webhook: config.WebhookConfig{
			Timeout: 2 * time.Second,
		},
		Session:  config.SessionConfig{Store: "sql", CookieName: "sid", Duration: time.Hour},
		CORS:     config.CORSConfig{AllowedOrigins: []string{"https://press.example"}},
		S3Config: &config.S3Config{},
	}
}

// newTestAPI serves a fresh SQLite database and logs in a test user.
func newTestAPI(t *testing.T, configure ...func(*config.Config)) *testAPI {
	t.Helper()
	cfg := testConfig()
	for _, c := range configure {
		c(cfg)
	}

	h := NewHTTPHandler(testkit.NewSQLiteDB(t), cfg, Options{Hub: wsnotify.NewManager()})
	_, err := h.auth.CreateUser(context.Background(), testUser, "press@sway.example", testPassword, false)
	require.NoError(t, err)

	api := &testAPI{handler: h, router: h.Router()}
	api.cookie = api.login(t, testUser, testPassword)
	return api
}

func (a *testAPI) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/login", jsonBody(t, map[string]string{"username": username, "password": password}), "application/json", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func (a *testAPI) request(t *testing.T, method, path string, body io.Reader, contentType string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// do sends an authenticated request.
func (a *testAPI) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	return a.request(t, method, path, body, contentType, a.cookie)
}

func (a *testAPI) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, method, path, jsonBody(t, payload), "application/json")
}

func (a *testAPI) importCSV(t *testing.T, table, batch, csv string) map[string]any {
	t.Helper()
	body, contentType := multipartBody(t, map[string]string{
		"target_table":   table,
		"column_mapping": contactsMapping,
		"upload_name":    batch,
	}, "file", "contacts.csv", []byte(csv))
	rec := a.do(t, http.MethodPost, "/api/import/run", body, contentType)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[map[string]any](t, rec)
}

func (a *testAPI) seed(t *testing.T) {
	t.Helper()
	a.importCSV(t, "journalists", "Daily list", journalistsCSV)
	a.importCSV(t, "media_titles", "Weekly list", mediaTitlesCSV)
}

func jsonBody(t *testing.T, payload any) io.Reader {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
