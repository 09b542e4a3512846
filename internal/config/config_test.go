package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Backup env and restore after test
	oldSite := os.Getenv("SITE_DIR")
	oldListen := os.Getenv("LISTEN_ADDR")
	defer func() {
		_ = os.Setenv("SITE_DIR", oldSite)
		_ = os.Setenv("LISTEN_ADDR", oldListen)
	}()

	t.Run("Defaults", func(t *testing.T) {
		_ = os.Unsetenv("SITE_DIR")
		_ = os.Unsetenv("LISTEN_ADDR")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.SiteDir != "site" {
			t.Errorf("Expected default SiteDir site, got %s", cfg.SiteDir)
		}
		if cfg.ListenAddr != ":8090" {
			t.Errorf("Expected default ListenAddr :8090, got %s", cfg.ListenAddr)
		}
		if cfg.TrustProxy {
			t.Error("Expected TrustProxy to default to false")
		}
	})

	t.Run("Env Overrides", func(t *testing.T) {
		_ = os.Setenv("SITE_DIR", "/tmp/site")
		_ = os.Setenv("LISTEN_ADDR", ":8080")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if cfg.SiteDir != "/tmp/site" {
			t.Errorf("Expected SiteDir /tmp/site, got %s", cfg.SiteDir)
		}
		if cfg.ListenAddr != ":8080" {
			t.Errorf("Expected ListenAddr :8080, got %s", cfg.ListenAddr)
		}
	})
}
