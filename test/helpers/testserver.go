package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"fairway_backend/internal/app"
	"fairway_backend/internal/config"
	"fairway_backend/internal/models"
	chatmodels "fairway_backend/internal/models/chat"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer hosts the full API against a real database for integration
// tests.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// RequireDatabase skips the test unless DATABASE_URL points at a test
// database.
func RequireDatabase(t *testing.T) {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
}

// NewTestServer connects to the test database, migrates the schema and
// mounts the full router on an httptest server.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	config.LoadConfig()
	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	if err := db.Exec("CREATE SCHEMA IF NOT EXISTS chat").Error; err != nil {
		t.Fatalf("failed to create chat schema: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.CoachProfile{},
		&models.StudentProfile{},
		&models.Booking{},
		&models.Review{},
		&chatmodels.Conversation{},
		&chatmodels.Message{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{Server: server, DB: db}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables empties every table between tests.
func (ts *TestServer) ClearTables() {
	tables := []string{
		"chat.messages",
		"chat.conversations",
		"reviews",
		"bookings",
		"refresh_tokens",
		"coach_profiles",
		"student_profiles",
		"users",
	}
	for _, table := range tables {
		ts.DB.Exec("TRUNCATE TABLE " + table + " CASCADE")
	}
}

// DoJSON sends a JSON request with an optional bearer token and decodes the
// response body into out (when out is non-nil).
func (ts *TestServer) DoJSON(t *testing.T, method, path, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	if out != nil {
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("failed to read response body: %v", err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				t.Fatalf("failed to decode response (%s): %v", string(data), err)
			}
		}
	}
	return resp
}
