package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider names accepted in PROVIDER.
const (
	ProviderOverpass = "overpass"
	ProviderPostGIS  = "postgis"
)

// Accepted H3_RESOLUTION range. Cells coarser than res 7 span several
// kilometres, so one cache entry would serve origins far apart.
const (
	MinH3Resolution = 7
	MaxH3Resolution = 15
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	DBSource        string        `mapstructure:"DB_SOURCE"`
	Provider        string        `mapstructure:"PROVIDER"`
	OverpassURL     string        `mapstructure:"OVERPASS_URL"`
	NominatimURL    string        `mapstructure:"NOMINATIM_URL"`
	UserAgent       string        `mapstructure:"USER_AGENT"`
	DefaultRadiusKm float64       `mapstructure:"DEFAULT_RADIUS_KM"`
	ResolveTimeout  time.Duration `mapstructure:"RESOLVE_TIMEOUT"`
	CacheTTL        time.Duration `mapstructure:"CACHE_TTL"`
	H3Resolution    int           `mapstructure:"H3_RESOLUTION"`
	SessionIdleTTL  time.Duration `mapstructure:"SESSION_IDLE_TTL"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogPretty       bool          `mapstructure:"LOG_PRETTY"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("PROVIDER", ProviderOverpass)
	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("USER_AGENT", "SMVGreenRickshawApp/1.0")
	v.SetDefault("DEFAULT_RADIUS_KM", 3.0)
	v.SetDefault("RESOLVE_TIMEOUT", 10*time.Second)
	v.SetDefault("CACHE_TTL", 10*time.Minute)
	v.SetDefault("H3_RESOLUTION", 9)
	v.SetDefault("SESSION_IDLE_TTL", 30*time.Minute)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}

// LoadConfig reads configuration from app.env in path, overridden by the
// environment. A .env file in the working directory is loaded first if present.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: reading app.env: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: decoding: %w", err)
	}

	return config, config.Validate()
}

// Validate checks the values that would otherwise fail late at request time.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOverpass:
	case ProviderPostGIS:
		if c.DBSource == "" {
			return fmt.Errorf("config: PROVIDER=%s needs DB_SOURCE", c.Provider)
		}
	default:
		return fmt.Errorf("config: unknown PROVIDER %q", c.Provider)
	}
	if c.DefaultRadiusKm <= 0 {
		return fmt.Errorf("config: DEFAULT_RADIUS_KM must be positive, got %v", c.DefaultRadiusKm)
	}
	if c.ResolveTimeout <= 0 {
		return fmt.Errorf("config: RESOLVE_TIMEOUT must be positive, got %v", c.ResolveTimeout)
	}
	if c.H3Resolution < MinH3Resolution || c.H3Resolution > MaxH3Resolution {
		return fmt.Errorf("config: H3_RESOLUTION must be within %d..%d, got %d", MinH3Resolution, MaxH3Resolution, c.H3Resolution)
	}
	if c.SessionIdleTTL <= 0 {
		return fmt.Errorf("config: SESSION_IDLE_TTL must be positive, got %v", c.SessionIdleTTL)
	}
	return nil
}
