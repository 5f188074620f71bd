package configs

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Conf struct {
	AppEnv        string `mapstructure:"APP_ENV"`
	WebServerPort string `mapstructure:"WEB_SERVER_PORT"`

	RedisHost string `mapstructure:"REDIS_HOST"`
	RedisPort string `mapstructure:"REDIS_PORT"`

	// Relational driver roster, read only by the seeder.
	DBDriver   string `mapstructure:"DB_DRIVER"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	OtelCollectorAddr string `mapstructure:"OTEL_COLLECTOR_ADDR"`

	// StrictUnknownDriver makes availability/status updates against an
	// unknown driver fail with not-found instead of silently doing
	// nothing.
	StrictUnknownDriver bool `mapstructure:"STRICT_UNKNOWN_DRIVER"`

	// LocationStaleAfter hides records not refreshed within the window.
	// Zero keeps stale drivers discoverable until explicitly removed.
	LocationStaleAfter time.Duration `mapstructure:"LOCATION_STALE_AFTER"`

	BreakerEnabled bool `mapstructure:"BREAKER_ENABLED"`

	SeedCenterLat float64 `mapstructure:"SEED_CENTER_LAT"`
	SeedCenterLng float64 `mapstructure:"SEED_CENTER_LNG"`

	RateLimitRPS   int `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst int `mapstructure:"RATE_LIMIT_BURST"`
}

// LoadConfig reads .env from path, then lets environment variables
// override it. A missing file is fine; every key has a default.
func LoadConfig(path string) (*Conf, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WEB_SERVER_PORT", "8000")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "taxi24")
	viper.SetDefault("DB_PASSWORD", "")
	viper.SetDefault("DB_NAME", "taxi24")
	viper.SetDefault("OTEL_COLLECTOR_ADDR", "")
	viper.SetDefault("STRICT_UNKNOWN_DRIVER", true)
	viper.SetDefault("LOCATION_STALE_AFTER", time.Duration(0))
	viper.SetDefault("BREAKER_ENABLED", false)
	viper.SetDefault("SEED_CENTER_LAT", 40.4168)
	viper.SetDefault("SEED_CENTER_LNG", -3.7038)
	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg *Conf
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Conf) IsProduction() bool {
	return c.AppEnv == "production"
}
