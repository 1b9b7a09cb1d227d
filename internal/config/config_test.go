package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.Dungeon == nil {
		t.Fatal("expected default dungeon tuning")
	}
	if cfg.Wild == nil {
		t.Fatal("expected default wilderness constraints")
	}

	if cfg.Store.Driver != "sqlite" {
		t.Errorf("expected sqlite driver by default, got %s", cfg.Store.Driver)
	}

	if len(cfg.Serve.AllowedOrigins) != 0 {
		t.Errorf("expected empty allowed origins by default, got %v", cfg.Serve.AllowedOrigins)
	}

	if cfg.Serve.MaxMessageSize != 4096 {
		t.Errorf("expected max message size 4096, got %d", cfg.Serve.MaxMessageSize)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected default config for missing file, got nil")
	}

	// Should return defaults
	if len(cfg.Serve.AllowedOrigins) != 0 {
		t.Errorf("expected empty allowed origins by default")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	// Create temp config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "generator.yaml")

	content := `
dungeon:
  max_rooms: 12
  door_chance: 15
wilderness:
  towns: 7
  rivers: 4
tree_file: data/custom_tree.yaml
store:
  driver: postgres
  dsn: "host=localhost dbname=levels"
serve:
  allowed_origins:
    - "https://example.com"
    - "http://localhost:3000"
  max_message_size: 8192
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Dungeon.MaxRooms != 12 {
		t.Errorf("expected max_rooms 12, got %d", cfg.Dungeon.MaxRooms)
	}
	if cfg.Dungeon.DoorChance != 15 {
		t.Errorf("expected door_chance 15, got %d", cfg.Dungeon.DoorChance)
	}

	if cfg.Wild.Towns != 7 {
		t.Errorf("expected 7 towns, got %d", cfg.Wild.Towns)
	}
	if cfg.Wild.Rivers != 4 {
		t.Errorf("expected 4 rivers, got %d", cfg.Wild.Rivers)
	}

	if cfg.TreeFile != "data/custom_tree.yaml" {
		t.Errorf("expected custom tree file, got %s", cfg.TreeFile)
	}

	if cfg.Store.Driver != "postgres" {
		t.Errorf("expected postgres driver, got %s", cfg.Store.Driver)
	}

	if len(cfg.Serve.AllowedOrigins) != 2 {
		t.Errorf("expected 2 allowed origins, got %d", len(cfg.Serve.AllowedOrigins))
	}

	if cfg.Serve.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("expected first origin 'https://example.com', got %s", cfg.Serve.AllowedOrigins[0])
	}

	if cfg.Serve.MaxMessageSize != 8192 {
		t.Errorf("expected max message size 8192, got %d", cfg.Serve.MaxMessageSize)
	}
}

func TestLoadConfig_PartialFile(t *testing.T) {
	// Fields absent from the file keep their defaults
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "generator.yaml")

	content := `
wilderness:
  towns: 2
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Wild.Towns != 2 {
		t.Errorf("expected 2 towns, got %d", cfg.Wild.Towns)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("expected default sqlite driver, got %s", cfg.Store.Driver)
	}
}

func TestIsOriginAllowed_EmptyList_SameOrigin(t *testing.T) {
	cfg := ServeConfig{
		AllowedOrigins: []string{},
	}

	// Same origin (no Origin header)
	if !cfg.IsOriginAllowed("", "localhost:4000") {
		t.Error("expected empty origin to be allowed (same-origin)")
	}

	// Same origin (matching host)
	if !cfg.IsOriginAllowed("http://localhost:4000", "localhost:4000") {
		t.Error("expected matching origin to be allowed (same-origin)")
	}

	// Different origin should be rejected
	if cfg.IsOriginAllowed("http://evil.com", "localhost:4000") {
		t.Error("expected different origin to be rejected (same-origin policy)")
	}
}

func TestIsOriginAllowed_Wildcard(t *testing.T) {
	cfg := ServeConfig{
		AllowedOrigins: []string{"*"},
	}

	// Wildcard allows everything
	if !cfg.IsOriginAllowed("http://anything.com", "localhost:4000") {
		t.Error("expected wildcard to allow any origin")
	}

	if !cfg.IsOriginAllowed("", "localhost:4000") {
		t.Error("expected wildcard to allow empty origin")
	}
}

func TestIsOriginAllowed_ExactMatch(t *testing.T) {
	cfg := ServeConfig{
		AllowedOrigins: []string{
			"https://example.com",
			"http://localhost:3000",
		},
	}

	// Exact matches
	if !cfg.IsOriginAllowed("https://example.com", "localhost:4000") {
		t.Error("expected exact match to be allowed")
	}

	if !cfg.IsOriginAllowed("http://localhost:3000", "localhost:4000") {
		t.Error("expected exact match to be allowed")
	}

	// Non-matching origin
	if cfg.IsOriginAllowed("http://evil.com", "localhost:4000") {
		t.Error("expected non-matching origin to be rejected")
	}

	// Partial match should not work
	if cfg.IsOriginAllowed("https://example.com:8080", "localhost:4000") {
		t.Error("expected partial match to be rejected")
	}
}

func TestIsSameOrigin(t *testing.T) {
	tests := []struct {
		origin      string
		requestHost string
		expected    bool
	}{
		{"", "localhost:4000", true},                       // No origin header
		{"http://localhost:4000", "localhost:4000", true},  // HTTP match
		{"https://localhost:4000", "localhost:4000", true}, // HTTPS match
		{"http://localhost:4000/", "localhost:4000", true}, // Trailing slash
		{"http://example.com", "localhost:4000", false},    // Different host
		{"http://localhost:3000", "localhost:4000", false}, // Different port
		{"ws://localhost:4000", "localhost:4000", true},    // WebSocket scheme
	}

	for _, tt := range tests {
		result := isSameOrigin(tt.origin, tt.requestHost)
		if result != tt.expected {
			t.Errorf("isSameOrigin(%q, %q) = %v, want %v",
				tt.origin, tt.requestHost, result, tt.expected)
		}
	}
}
