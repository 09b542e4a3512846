package config

import (
	"os"
)

type Config struct {
	SiteDir     string
	ListenAddr  string
	BaselineZip string
	OutputZip   string
	TrustProxy  bool
}

func Default() Config {
	return Config{
		SiteDir:     "site",
		ListenAddr:  ":8090",
		BaselineZip: "titan-index-baseline.zip",
		OutputZip:   "titan-index-release.zip",
		TrustProxy:  false,
	}
}

func Load() (*Config, error) {
	cfg := Default()

	if dir := os.Getenv("SITE_DIR"); dir != "" {
		cfg.SiteDir = dir
	}

	if listen := os.Getenv("LISTEN_ADDR"); listen != "" {
		cfg.ListenAddr = listen
	}

	if baseline := os.Getenv("BASELINE_ZIP"); baseline != "" {
		cfg.BaselineZip = baseline
	}

	if out := os.Getenv("OUTPUT_ZIP"); out != "" {
		cfg.OutputZip = out
	}

	if os.Getenv("TRUST_PROXY") == "true" {
		cfg.TrustProxy = true
	}

	return &cfg, nil
}
