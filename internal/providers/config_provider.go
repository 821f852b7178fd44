package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"nomadix/internal/structures"
)

// trackingProfiles holds the poll and promotion defaults of each deployment profile.
// Explicit values in the config file or environment win over these.
var trackingProfiles = map[string]structures.TrackingConfig{
	"dev": {
		PollInterval: 30 * time.Second,
		Thresholds: structures.Thresholds{
			City:      30 * time.Second,
			Country:   2 * time.Minute,
			Continent: 5 * time.Minute,
		},
		BatchLimit: 1,
	},
	"prod": {
		PollInterval: 10 * time.Minute,
		Thresholds: structures.Thresholds{
			City:      3 * time.Hour,
			Country:   12 * time.Hour,
			Continent: 24 * time.Hour,
		},
		BatchLimit: 10,
	},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("tracking.profile", "prod")
	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.key", "travelHistory")
	v.SetDefault("history.source", "none")
	v.SetDefault("history.timeout", 10*time.Second)
	v.SetDefault("cache.ttl", time.Minute)
}

func setProfileDefaults(v *viper.Viper) error {
	profile := v.GetString("tracking.profile")
	tracking, ok := trackingProfiles[profile]
	if !ok {
		return fmt.Errorf("unknown tracking profile %q", profile)
	}
	v.SetDefault("tracking.pollInterval", tracking.PollInterval)
	v.SetDefault("tracking.thresholds.city", tracking.Thresholds.City)
	v.SetDefault("tracking.thresholds.country", tracking.Thresholds.Country)
	v.SetDefault("tracking.thresholds.continent", tracking.Thresholds.Continent)
	v.SetDefault("tracking.batchLimit", tracking.BatchLimit)
	return nil
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setDefaults(v)

	_ = v.BindEnv("logger.level", "NOMADIX_LOG_LEVEL")
	_ = v.BindEnv("tracking.profile", "NOMADIX_PROFILE")
	_ = v.BindEnv("tracking.pollInterval", "NOMADIX_POLL_INTERVAL")
	_ = v.BindEnv("tracking.batchLimit", "NOMADIX_BATCH_LIMIT")
	_ = v.BindEnv("storage.driver", "NOMADIX_STORE_DRIVER")
	_ = v.BindEnv("storage.filePath", "NOMADIX_STORE_FILE")
	_ = v.BindEnv("storage.redis.addr", "NOMADIX_REDIS_ADDR")
	_ = v.BindEnv("storage.redis.password", "NOMADIX_REDIS_PASSWORD")
	_ = v.BindEnv("storage.postgres.dsn", "NOMADIX_DATABASE_URL")
	_ = v.BindEnv("history.url", "NOMADIX_HISTORY_URL")
	_ = v.BindEnv("geoip.database", "NOMADIX_GEOIP_DB")
	_ = v.BindEnv("cache.enabled", "NOMADIX_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "NOMADIX_CACHE_SIZE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	if err = setProfileDefaults(v); err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Nomadix"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
