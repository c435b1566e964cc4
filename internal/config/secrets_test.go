package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestResolveSecret_EnvOnly(t *testing.T) {
	const envName = "VACUUM_TEST_SECRET_ENV"
	t.Setenv(envName, "env-value")

	value, err := ResolveSecret(envName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "env-value" {
		t.Errorf("got %q, want %q", value, "env-value")
	}
}

func TestResolveSecret_FileWinsAndTrims(t *testing.T) {
	const envName = "VACUUM_TEST_SECRET_FILE"
	t.Setenv(envName, "env-value")
	t.Setenv(envName+"_FILE", writeSecret(t, "  file-value \n\n"))

	value, err := ResolveSecret(envName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "file-value" {
		t.Errorf("got %q, want %q", value, "file-value")
	}
}

func TestResolveSecret_NeitherSet(t *testing.T) {
	const envName = "VACUUM_TEST_SECRET_UNSET"
	t.Setenv(envName, "")
	t.Setenv(envName+"_FILE", "")

	value, err := ResolveSecret(envName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "" {
		t.Errorf("got %q, want empty string", value)
	}
}

func TestResolveSecret_FileNotFound(t *testing.T) {
	const envName = "VACUUM_TEST_SECRET_MISSING"
	t.Setenv(envName+"_FILE", "/nonexistent/path/to/secret")

	if _, err := ResolveSecret(envName); err == nil {
		t.Error("expected error when file does not exist")
	}
}

func TestFile_MQTTPassword(t *testing.T) {
	t.Setenv(MQTTPasswordEnv, "")
	t.Setenv(MQTTPasswordEnv+"_FILE", writeSecret(t, "hunter2\n"))

	pw, err := Default().MQTTPassword()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pw != "hunter2" {
		t.Errorf("got %q, want %q", pw, "hunter2")
	}
}
