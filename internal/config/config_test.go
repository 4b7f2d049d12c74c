package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
environment_url: https://staging.new.expensify.com

viewer:
  account_id: 18
  offline: true

database:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  name: threadline_staging
  user: reader
  password: secret

server:
  port: 9090
  refresh: "*/5 * * * *"

display:
  last_message_max_length: 120
`

const minimalYAML = `
viewer:
  account_id: 7
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.EnvironmentURL != "https://staging.new.expensify.com" {
		t.Errorf("EnvironmentURL = %q, want %q", cfg.EnvironmentURL, "https://staging.new.expensify.com")
	}
	if cfg.Viewer.AccountID != 18 {
		t.Errorf("Viewer.AccountID = %d, want %d", cfg.Viewer.AccountID, 18)
	}
	if !cfg.Viewer.Offline {
		t.Error("Viewer.Offline = false, want true")
	}
	if cfg.Database.Driver != DriverMySQL {
		t.Errorf("Database.Driver = %q, want %q", cfg.Database.Driver, DriverMySQL)
	}
	if cfg.Database.Host != "10.0.0.5" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "10.0.0.5")
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 3307)
	}
	if cfg.Database.Name != "threadline_staging" {
		t.Errorf("Database.Name = %q, want %q", cfg.Database.Name, "threadline_staging")
	}
	if cfg.Database.User != "reader" || cfg.Database.Password != "secret" {
		t.Errorf("Database credentials = %q/%q, want reader/secret", cfg.Database.User, cfg.Database.Password)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.Refresh != "*/5 * * * *" {
		t.Errorf("Server.Refresh = %q, want %q", cfg.Server.Refresh, "*/5 * * * *")
	}
	if cfg.Display.LastMessageMaxLength != 120 {
		t.Errorf("Display.LastMessageMaxLength = %d, want %d", cfg.Display.LastMessageMaxLength, 120)
	}
}

func TestParse_MinimalConfig_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.EnvironmentURL != DefaultEnvironmentURL {
		t.Errorf("EnvironmentURL = %q, want %q (default)", cfg.EnvironmentURL, DefaultEnvironmentURL)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want %q (default)", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Database.Path != "threadline.db" {
		t.Errorf("Database.Path = %q, want %q (default)", cfg.Database.Path, "threadline.db")
	}
	if cfg.Database.Host != "" {
		t.Errorf("Database.Host = %q, want empty for sqlite", cfg.Database.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d (default)", cfg.Server.Port, 8080)
	}
	if cfg.Server.Refresh != DefaultRefresh {
		t.Errorf("Server.Refresh = %q, want %q (default)", cfg.Server.Refresh, DefaultRefresh)
	}
	if cfg.Display.LastMessageMaxLength != 200 {
		t.Errorf("Display.LastMessageMaxLength = %d, want %d (default)", cfg.Display.LastMessageMaxLength, 200)
	}
}

func TestParse_MySQLDefaults(t *testing.T) {
	yaml := `
viewer:
  account_id: 7
database:
  driver: mysql
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Host != "127.0.0.1" {
		t.Errorf("Database.Host = %q, want %q (default)", cfg.Database.Host, "127.0.0.1")
	}
	if cfg.Database.Port != 3306 {
		t.Errorf("Database.Port = %d, want %d (default)", cfg.Database.Port, 3306)
	}
	if cfg.Database.User != "root" {
		t.Errorf("Database.User = %q, want %q (default)", cfg.Database.User, "root")
	}
	if cfg.Database.Name != "threadline" {
		t.Errorf("Database.Name = %q, want %q (default)", cfg.Database.Name, "threadline")
	}
	if cfg.Database.Path != "" {
		t.Errorf("Database.Path = %q, want empty for mysql", cfg.Database.Path)
	}
}

func TestParse_MissingViewer(t *testing.T) {
	_, err := Parse([]byte("server:\n  port: 8081\n"))
	if err == nil {
		t.Fatal("expected error for missing viewer")
	}
	if !strings.Contains(err.Error(), "viewer.account_id is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "viewer.account_id is required")
	}
}

func TestParse_UnknownDriver(t *testing.T) {
	yaml := `
viewer:
  account_id: 7
database:
  driver: postgres
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !strings.Contains(err.Error(), `database.driver "postgres"`) {
		t.Errorf("error = %q, want to mention the driver", err.Error())
	}
}

func TestParse_BadRefreshSchedule(t *testing.T) {
	yaml := `
viewer:
  account_id: 7
server:
  refresh: "every minute"
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected error for bad schedule")
	}
	if !strings.Contains(err.Error(), "server.refresh") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "server.refresh")
	}
}

func TestParse_MultipleValidationErrors(t *testing.T) {
	yaml := `
server:
  port: 70000
display:
  last_message_max_length: -1
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{
		"viewer.account_id is required",
		"server.port 70000 is out of range",
		"display.last_message_max_length must not be negative",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q: %s", want, msg)
		}
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte(":::invalid"))
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "config: parse:") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: parse:")
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Viewer.AccountID != 7 {
		t.Errorf("Viewer.AccountID = %d, want %d", cfg.Viewer.AccountID, 7)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config: read") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: read")
	}
}

// --- Fixture-based tests using testdata/ files ---

func TestLoad_FullFixture(t *testing.T) {
	cfg, err := Load("testdata/valid_full.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.EnvironmentURL != "https://staging.new.expensify.com" {
		t.Errorf("EnvironmentURL = %q, want trailing slash trimmed", cfg.EnvironmentURL)
	}
	if cfg.Database.Host != "10.0.0.5" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "10.0.0.5")
	}
}

func TestLoad_MinimalFixture(t *testing.T) {
	cfg, err := Load("testdata/valid_minimal.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Viewer.AccountID != 7 {
		t.Errorf("Viewer.AccountID = %d, want %d", cfg.Viewer.AccountID, 7)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("Database.Driver = %q, want default %q", cfg.Database.Driver, DriverSQLite)
	}
}

func TestLoad_MissingViewerFixture(t *testing.T) {
	_, err := Load("testdata/missing_viewer.yaml")
	if err == nil {
		t.Fatal("expected error for missing viewer")
	}
	if !strings.Contains(err.Error(), "viewer.account_id is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "viewer.account_id is required")
	}
}

func TestLoad_InvalidYAMLFixture(t *testing.T) {
	_, err := Load("testdata/invalid.yaml")
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "config: parse:") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "config: parse:")
	}
}
