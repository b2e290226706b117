package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// initStaticConfig wires the static configuration sources: an optional TOML
// file, QUIPVID_-prefixed environment variables, and hard defaults.
func initStaticConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")
	viper.AddConfigPath("/etc/quipvid")
	viper.AddConfigPath(".")
	viper.AddConfigPath(getBaseDir())

	viper.SetEnvPrefix("QUIPVID")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setStaticDefaults()

	// The config file is optional; defaults apply when it is absent.
	_ = viper.ReadInConfig()
}

// RefreshEnvConfig re-reads environment overrides. Used by tests.
func RefreshEnvConfig() {
	viper.SetEnvPrefix("QUIPVID")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.Set("app.debug", os.Getenv("QUIPVID_DEBUG") == "true")
	viper.Set("app.log_level", os.Getenv("QUIPVID_LOG_LEVEL"))
	viper.Set("database.url", os.Getenv("QUIPVID_DATABASE_URL"))
	viper.Set("paths.db_folder", os.Getenv("QUIPVID_DB_FOLDER"))
	viper.Set("paths.log_folder", os.Getenv("QUIPVID_LOG_FOLDER"))
}

func setStaticDefaults() {
	viper.SetDefault("app.name", "quipvid")
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// Empty database.url falls back to the local SQLite file.
	viper.SetDefault("database.url", "")

	// The API server keeps the uvicorn-era surface: 0.0.0.0:8002.
	viper.SetDefault("api.listen", "0.0.0.0")
	viper.SetDefault("api.port", 8002)
	viper.SetDefault("api.domain", "")

	viper.SetDefault("front.listen", "")
	viper.SetDefault("front.port", 8003)
	viper.SetDefault("front.api_base", "")

	viper.SetDefault("ingest.api_url", "https://quipvid.com/api/quips/")
	viper.SetDefault("ingest.schedule", "")

	if runtime.GOOS == "windows" {
		viper.SetDefault("paths.db_folder", getBaseDir())
		viper.SetDefault("paths.log_folder", "./log")
	} else {
		viper.SetDefault("paths.db_folder", "/etc/quipvid")
		viper.SetDefault("paths.log_folder", "/var/log")
	}
}
