package shared

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	File        string // snapshot location: path, redis:// or mysql:// URL
	AppEnv      string
	LogLevel    string
	LogFile     string
	MetricsFile string
	SnapshotKey string // snapshot name inside redis/mysql
}

// NewViper reads HOTELS_* environment variables over the defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("hotels")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("file", "hotel.json")
	v.SetDefault("app_env", "prod")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_file", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("snapshot_key", "hotel")
	return v
}

func Load(v *viper.Viper) Config {
	return Config{
		File:        v.GetString("file"),
		AppEnv:      v.GetString("app_env"),
		LogLevel:    v.GetString("log_level"),
		LogFile:     v.GetString("log_file"),
		MetricsFile: v.GetString("metrics_file"),
		SnapshotKey: v.GetString("snapshot_key"),
	}
}
