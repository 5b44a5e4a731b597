package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "https://imdb.boltxgaming.com/api" {
			t.Errorf("expected API base URL https://imdb.boltxgaming.com/api, got %s", config.API.BaseURL)
		}

		if config.Media.Host != "https://imdb.boltxgaming.com" {
			t.Errorf("expected media host https://imdb.boltxgaming.com, got %s", config.Media.Host)
		}

		if config.Media.ProbeRate != 4.0 {
			t.Errorf("expected probe rate 4.0, got %f", config.Media.ProbeRate)
		}

		if config.Storage.DataDir != "./.marquee" {
			t.Errorf("expected data dir ./.marquee, got %s", config.Storage.DataDir)
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.API.BaseURL != defaultConfig.API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "http://localhost:9000/api"

[media]
host = "http://localhost:9000"
probe_rate = 1.5

[storage]
data_dir = "/tmp/marquee-data"

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://localhost:9000/api" {
			t.Errorf("expected base URL http://localhost:9000/api, got %s", config.API.BaseURL)
		}

		if config.Media.ProbeRate != 1.5 {
			t.Errorf("expected probe rate 1.5, got %f", config.Media.ProbeRate)
		}

		if config.Storage.DataDir != "/tmp/marquee-data" {
			t.Errorf("expected data dir /tmp/marquee-data, got %s", config.Storage.DataDir)
		}

		if config.Log.Level != "debug" {
			t.Errorf("expected log level debug, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Malformed File", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for malformed config file")
		}
	})
}
