package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/certiverify/api/internal/api"
	"github.com/certiverify/api/internal/config"
	"github.com/certiverify/api/internal/repository"
	"github.com/certiverify/api/internal/repository/jsonfile"
	"github.com/certiverify/api/internal/service"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TestServer wires the full router over a flat-file store in a temp dir.
type TestServer struct {
	Server   *httptest.Server
	Store    *jsonfile.Store
	Repos    *repository.Repositories
	Services *service.Services
	DataDir  string
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dir := t.TempDir()
	store, err := jsonfile.NewStore(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cfg := &config.Config{
		Port:        "0",
		Environment: "test",
		DataDir:     dir,
		BcryptCost:  bcrypt.MinCost,
	}

	repos := jsonfile.NewRepositories(store)
	services := service.NewServices(repos, cfg, zap.NewNop())
	router := api.NewRouter(services, zap.NewNop())

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &TestServer{
		Server:   srv,
		Store:    store,
		Repos:    repos,
		Services: services,
		DataDir:  dir,
	}
}

// TestConfig returns a config suitable for tests: cheapest bcrypt cost,
// data dir expected to be overridden per test.
func TestConfig() *config.Config {
	return &config.Config{
		Port:        "0",
		Environment: "test",
		BcryptCost:  bcrypt.MinCost,
	}
}

// NewTestRepos builds flat-file repositories over a temp dir, for service
// and repository tests that do not need the HTTP layer.
func NewTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	store, err := jsonfile.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return jsonfile.NewRepositories(store)
}

// APIURL builds a full URL for a path under /api.
func (ts *TestServer) APIURL(path string) string {
	return ts.Server.URL + "/api" + path
}

// Request sends a JSON request, attaching the token as a bearer credential
// when non-empty.
func (ts *TestServer) Request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.APIURL(path), reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// Upload posts a multipart form with an optional file under the "pdf" field.
func (ts *TestServer) Upload(t *testing.T, path, token string, fields map[string]string, fileBytes []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field: %v", err)
		}
	}
	if fileBytes != nil {
		part, err := mw.CreateFormFile("pdf", "document.pdf")
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write(fileBytes); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.APIURL(path), &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

// Login posts credentials and returns the session token.
func (ts *TestServer) Login(t *testing.T, email, password string) string {
	t.Helper()

	resp := ts.Request(t, http.MethodPost, "/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	var result AuthResponse
	AssertJSONResponse(t, resp, &result)
	return result.Token
}
