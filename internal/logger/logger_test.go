package logger

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo}, // Default to INFO
		{"", slog.LevelInfo},        // Default to INFO
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseLogLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}

	if config.Level != "INFO" {
		t.Errorf("Default level = %q, want %q", config.Level, "INFO")
	}
	if !config.ConsoleEnabled {
		t.Error("Default ConsoleEnabled = false, want true")
	}
	if config.ConsoleFormat != "text" {
		t.Errorf("Default ConsoleFormat = %q, want %q", config.ConsoleFormat, "text")
	}
	if config.FileEnabled {
		t.Error("Default FileEnabled = true, want false")
	}
	if config.FilePath != "logs/levelgen.log" {
		t.Errorf("Default FilePath = %q, want %q", config.FilePath, "logs/levelgen.log")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "logging-test-*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	yamlContent := `logging:
  level: DEBUG
  console_enabled: true
  console_format: json
  file_enabled: true
  file_path: test.log
  file_max_size_mb: 20
`
	if _, err := tmpFile.Write([]byte(yamlContent)); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	tmpFile.Close()

	config, err := LoadConfig(tmpFile.Name())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want %q", config.Level, "DEBUG")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FilePath != "test.log" {
		t.Errorf("FilePath = %q, want %q", config.FilePath, "test.log")
	}
	if config.FileMaxSizeMB != 20 {
		t.Errorf("FileMaxSizeMB = %d, want %d", config.FileMaxSizeMB, 20)
	}
}

func TestEnvVarOverride(t *testing.T) {
	os.Setenv("LOG_LEVEL", "ERROR")
	os.Setenv("LOG_CONSOLE_FORMAT", "json")
	os.Setenv("LOG_FILE_ENABLED", "true")
	os.Setenv("LOG_FILE_PATH", "/custom/path.log")
	defer func() {
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("LOG_CONSOLE_FORMAT")
		os.Unsetenv("LOG_FILE_ENABLED")
		os.Unsetenv("LOG_FILE_PATH")
	}()

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want %q (from env var)", config.Level, "ERROR")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q (from env var)", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true (from env var)")
	}
	if config.FilePath != "/custom/path.log" {
		t.Errorf("FilePath = %q, want %q (from env var)", config.FilePath, "/custom/path.log")
	}
}

func TestInitializeWithTextFormat(t *testing.T) {
	var buf bytes.Buffer

	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger = slog.New(handler)

	Info("Test message", "key", "value")
	Debug("This should not appear") // Below INFO level

	output := buf.String()

	if !strings.Contains(output, "Test message") {
		t.Errorf("Output missing INFO message: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("Output missing structured field: %s", output)
	}
	if strings.Contains(output, "This should not appear") {
		t.Errorf("Output contains DEBUG message when level is INFO: %s", output)
	}
}

func TestInitializeWithJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	logger = slog.New(handler)

	Info("JSON test", "field1", "value1", "field2", 42)

	output := buf.String()

	if !strings.Contains(output, `"msg":"JSON test"`) {
		t.Errorf("Output missing JSON message field: %s", output)
	}
	if !strings.Contains(output, `"field1":"value1"`) {
		t.Errorf("Output missing JSON field: %s", output)
	}
	if !strings.Contains(output, `"field2":42`) {
		t.Errorf("Output missing numeric JSON field: %s", output)
	}
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	handler1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelInfo})

	multiH := newMultiHandler(handler1, handler2)
	logger = slog.New(multiH)

	Info("Multi-handler test", "field", "value")

	output1 := buf1.String()
	output2 := buf2.String()

	if !strings.Contains(output1, "Multi-handler test") {
		t.Error("First handler did not receive message")
	}
	if !strings.Contains(output2, "Multi-handler test") {
		t.Error("Second handler did not receive message")
	}
	if !strings.Contains(output1, "field=value") {
		t.Error("First handler missing structured field")
	}
	if !strings.Contains(output2, "field=value") {
		t.Error("Second handler missing structured field")
	}
}

func TestNilLogger(t *testing.T) {
	logger = nil

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logging with nil logger caused panic: %v", r)
		}
	}()

	Debug("debug")
	Info("info")
	Warning("warning")
	Error("error")
}
