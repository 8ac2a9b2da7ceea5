// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("API_BASE_URL", "http://localhost:3380")
	os.Setenv("TENANT_ID", "7")
	os.Setenv("POLL_INTERVAL", "2s")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIBaseURL != "http://localhost:3380" {
		t.Errorf("expected api base from env, got %q", cfg.APIBaseURL)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Errorf("expected 2s interval, got %v", cfg.PollInterval)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite default, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("TENANT_ID", "7")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-api", "http://api", "-tenant", "9", "-interval", "500ms"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.TenantID != "9" {
		t.Errorf("CLI should override env: expected 9, got %q", cfg.TenantID)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("expected 500ms, got %v", cfg.PollInterval)
	}
}

func TestParseFlags_MissingRequired(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error without api base URL")
	}
	if _, err := ParseFlags([]string{"-api", "http://api"}); err == nil {
		t.Error("expected error without tenant id")
	}
}

func TestParseFlags_YAMLFile(t *testing.T) {
	os.Clearenv()

	path := filepath.Join(t.TempDir(), "watch.yaml")
	content := `api_base_url: http://from-file
tenant_id: "42"
remember: true
poll_interval: 1s
database_type: postgres
database_url: postgres://state
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-config", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.APIBaseURL != "http://from-file" || cfg.TenantID != "42" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if !cfg.RememberMe {
		t.Error("remember from file not applied")
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("expected 1s, got %v", cfg.PollInterval)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %q", cfg.DatabaseType)
	}
}

func TestParseFlags_FlagBeatsFile(t *testing.T) {
	os.Clearenv()

	path := filepath.Join(t.TempDir(), "watch.yaml")
	if err := os.WriteFile(path, []byte("api_base_url: http://from-file\ntenant_id: \"1\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-config", path, "-api", "http://from-flag"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIBaseURL != "http://from-flag" {
		t.Errorf("flag must beat file, got %q", cfg.APIBaseURL)
	}
}

func TestParseFlags_BadInterval(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-api", "http://api", "-tenant", "1", "-interval", "often"})
	if err == nil {
		t.Error("expected error for unparsable interval")
	}
}

func TestParseSimFlags(t *testing.T) {
	os.Clearenv()

	if _, err := ParseSimFlags([]string{}); err == nil {
		t.Error("expected error without token salt")
	}

	cfg, err := ParseSimFlags([]string{"-p", "8080", "-token-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" || cfg.DatabaseURL != "ordersim.db" {
		t.Errorf("expected sqlite defaults, got %q %q", cfg.DatabaseType, cfg.DatabaseURL)
	}
}
