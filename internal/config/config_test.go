package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Invoice.DefaultDueDays != 14 || cfg.Invoice.NumberPrefix != "INV" {
		t.Fatalf("unexpected invoice defaults %+v", cfg.Invoice)
	}
	if cfg.Mail.MaxLinkLength != 1800 {
		t.Fatalf("unexpected mail default %d", cfg.Mail.MaxLinkLength)
	}
	if cfg.Assist.Model != "gemini-2.5-flash" || cfg.Assist.Timeout != 20*time.Second {
		t.Fatalf("unexpected assist defaults %+v", cfg.Assist)
	}
}

func TestLoad_OverridesKeepOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "invoice:\n  number_prefix: ACME\nassist:\n  timeout: 5s\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Invoice.NumberPrefix != "ACME" || cfg.Invoice.DefaultDueDays != 14 {
		t.Fatalf("unexpected invoice config %+v", cfg.Invoice)
	}
	if cfg.Assist.Timeout != 5*time.Second || cfg.Assist.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected assist config %+v", cfg.Assist)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Log.Level)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Mail.MaxLinkLength = 2000

	if err := cfg.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Mail.MaxLinkLength != 2000 {
		t.Fatalf("expected saved value, got %d", loaded.Mail.MaxLinkLength)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("invoice: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}
