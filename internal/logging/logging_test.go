package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestInstall_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lumina.log")

	done, err := Install(Config{Path: path, Level: "info"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	zap.L().Info("draft saved", zap.String("key", "invoice_data"))
	zap.L().Debug("hidden below info")
	done()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"draft saved"`) || !strings.Contains(out, `"key":"invoice_data"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden below info") {
		t.Fatalf("debug entry should be filtered at info level")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Config{Path: filepath.Join(t.TempDir(), "x.log"), Level: "loud"}); err == nil {
		t.Fatalf("expected an error for an unknown level")
	}
}

func TestNew_EmptyPathDisablesLogging(t *testing.T) {
	logger, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Fatalf("expected a no-op logger")
	}
}
