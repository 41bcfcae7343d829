package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("port = %d, want 5000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Server.FrontendOrigin != "http://localhost:3000" {
		t.Errorf("frontend origin = %q", cfg.Server.FrontendOrigin)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 8080
database:
  driver: mysql
  host: db.internal
  user: portal
  password: hunter2
  name: campus
auth:
  token_ttl: 1h
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	// Unset fields keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
	if got := cfg.Auth.TTL(); got != time.Hour {
		t.Errorf("TTL = %v, want 1h", got)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolveDSN(t *testing.T) {
	tests := []struct {
		name string
		db   DatabaseConfig
		want string
	}{
		{
			name: "explicit dsn wins",
			db:   DatabaseConfig{Driver: "mysql", DSN: "root@/custom"},
			want: "root@/custom",
		},
		{
			name: "mysql derived",
			db: DatabaseConfig{
				Driver: "mysql", Host: "db", User: "u", Password: "p", Name: "campus",
			},
			want: "u:p@tcp(db:3306)/campus?parseTime=true",
		},
		{
			name: "mysql explicit port",
			db: DatabaseConfig{
				Driver: "mysql", Host: "db", Port: 3307, User: "u", Password: "p", Name: "campus",
			},
			want: "u:p@tcp(db:3307)/campus?parseTime=true",
		},
		{
			name: "sqlite file",
			db:   DatabaseConfig{Driver: "sqlite", Name: "campus.db"},
			want: "campus.db",
		},
		{
			name: "sqlite memory fallback",
			db:   DatabaseConfig{Driver: "sqlite"},
			want: ":memory:",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.db.ResolveDSN()
			if err != nil {
				t.Fatalf("ResolveDSN: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveDSN = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveDSNUnknownDriver(t *testing.T) {
	if _, err := (DatabaseConfig{Driver: "oracle"}).ResolveDSN(); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestDurationFallbacks(t *testing.T) {
	if got := (AuthConfig{}).TTL(); got != 24*time.Hour {
		t.Errorf("TTL fallback = %v, want 24h", got)
	}
	if got := (AuthConfig{TokenTTL: "garbage"}).TTL(); got != 24*time.Hour {
		t.Errorf("TTL on bad input = %v, want 24h", got)
	}
	if got := (ServerConfig{}).ShutdownTimeoutDuration(); got != 30*time.Second {
		t.Errorf("shutdown fallback = %v, want 30s", got)
	}
}
