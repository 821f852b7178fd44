package structures

import "time"

type CliFlags struct {
	ConfigPath string
	EnvPath    string
	DebugMode  bool
}

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// Thresholds is the minimum continuous stay per place level before a visit is promoted.
type Thresholds struct {
	City      time.Duration `yaml:"city" validate:"required|min:1"`
	Country   time.Duration `yaml:"country" validate:"required|min:1"`
	Continent time.Duration `yaml:"continent" validate:"required|min:1"`
}

type TrackingConfig struct {
	Profile      string        `yaml:"profile" validate:"in:dev,prod"`
	PollInterval time.Duration `yaml:"pollInterval" validate:"required|min:1"`
	Thresholds   Thresholds    `yaml:"thresholds"`
	BatchLimit   int           `yaml:"batchLimit" validate:"required|min:1"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type StorageConfig struct {
	Driver   string         `yaml:"driver" validate:"required|in:memory,file,redis,postgres"`
	Key      string         `yaml:"key" validate:"required"`
	FilePath string         `yaml:"filePath"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type HistoryConfig struct {
	Source  string        `yaml:"source" validate:"required|in:none,http,file"`
	URL     string        `yaml:"url"`
	File    string        `yaml:"file"`
	Timeout time.Duration `yaml:"timeout"`
}

type GeoIPConfig struct {
	Database string `yaml:"database"`
	IP       string `yaml:"ip"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Tracking  TrackingConfig `yaml:"tracking"`
	Storage   StorageConfig  `yaml:"storage"`
	History   HistoryConfig  `yaml:"history"`
	GeoIP     GeoIPConfig    `yaml:"geoip"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
