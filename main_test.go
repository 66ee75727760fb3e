package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("assets/config.yaml", "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Assets == "" {
		t.Error("no asset directory configured")
	}

	cfg, err = loadConfig("assets/config.yaml", "/tmp/assets")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Assets != "/tmp/assets" {
		t.Errorf("assets %q not overridden", cfg.Assets)
	}

	broken := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(broken, []byte("window: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(broken, "/tmp/assets"); err == nil {
		t.Error("broken configuration accepted")
	}
}
