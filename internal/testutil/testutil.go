package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTempCrontab creates a temporary crontab file with the given content
// and returns the file path and a cleanup function.
func CreateTempCrontab(t *testing.T, content string) (string, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.cron")

	err := os.WriteFile(tmpFile, []byte(content), 0644)
	if err != nil {
		t.Fatalf("failed to create temp crontab: %v", err)
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	return tmpFile, cleanup
}

// TempConfigDir creates a temporary directory containing a config.toml with
// the given content, suitable for config.Load. Returns the directory path
// and a cleanup function.
func TempConfigDir(t *testing.T, configToml string) (string, func()) {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	if err := os.WriteFile(configPath, []byte(configToml), 0644); err != nil {
		t.Fatalf("failed to create temp config: %v", err)
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	return tmpDir, cleanup
}

// LoadTestCrontab returns the path of a test crontab file in the testdata
// directory. It does not read the file or check that it exists.
func LoadTestCrontab(name string) string {
	// Path relative to internal/testutil
	path := filepath.Join("..", "..", "testdata", "crontab", name)
	return path
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
