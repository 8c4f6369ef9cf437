package configs

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// =======================
// ENV LOADER
// =======================

// LoadEnv memuat .env kecuali jalan di Railway. Mengembalikan sumber ENV
// supaya bisa di-log setelah logger siap.
func LoadEnv() string {
	if GetEnv("RAILWAY_ENVIRONMENT") != "" {
		return "railway"
	}
	if err := godotenv.Load(); err != nil {
		return "system"
	}
	return ".env"
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// APP CONFIG (viper)
// =======================

type Config struct {
	AppEnv   string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Timezone string `mapstructure:"TIMEZONE"`

	// Sumber data: file | remote | postgres | mongo
	DataSource string `mapstructure:"DATA_SOURCE"`
	DataFile   string `mapstructure:"DATA_FILE"`

	UpstreamURL            string  `mapstructure:"UPSTREAM_URL"`
	UpstreamTimeoutSeconds int     `mapstructure:"UPSTREAM_TIMEOUT_SECONDS"`
	UpstreamRPS            float64 `mapstructure:"UPSTREAM_RPS"`

	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	CacheEnabled         bool   `mapstructure:"CACHE_ENABLED"`
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisUsername        string `mapstructure:"REDIS_USERNAME"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisDB              int    `mapstructure:"REDIS_DB"`
	CacheTTLSeconds      int    `mapstructure:"CACHE_TTL_SECONDS"`
	CacheStaleTTLSeconds int    `mapstructure:"CACHE_STALE_TTL_SECONDS"`

	ExportDir         string `mapstructure:"EXPORT_DIR"`
	ExportBasePath    string `mapstructure:"EXPORT_BASE_PATH"`
	ExportConcurrency int    `mapstructure:"EXPORT_CONCURRENCY"`
	ExportDaily       bool   `mapstructure:"EXPORT_DAILY"`
	ExportOSSPrefix   string `mapstructure:"EXPORT_OSS_PREFIX"`

	OSSEndpoint      string `mapstructure:"ALI_OSS_ENDPOINT"`
	OSSAccessKey     string `mapstructure:"ALI_OSS_ACCESS_KEY"`
	OSSSecretKey     string `mapstructure:"ALI_OSS_SECRET_KEY"`
	OSSSecurityToken string `mapstructure:"ALI_OSS_SECURITY_TOKEN"`
	OSSBucket        string `mapstructure:"ALI_OSS_BUCKET"`
	OSSPublicBase    string `mapstructure:"ALI_OSS_PUBLIC_BASE"`
}

const (
	SourceFile     = "file"
	SourceRemote   = "remote"
	SourcePostgres = "postgres"
	SourceMongo    = "mongo"
)

var defaults = map[string]any{
	"APP_ENV":                  "development",
	"LOG_LEVEL":                "info",
	"TIMEZONE":                 "Asia/Jakarta",
	"DATA_SOURCE":              SourceFile,
	"DATA_FILE":                "data/cities.json",
	"UPSTREAM_URL":             "",
	"UPSTREAM_TIMEOUT_SECONDS": 15,
	"UPSTREAM_RPS":             2.0,
	"DB_USER":                  "",
	"DB_PASSWORD":              "",
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "5432",
	"DB_NAME":                  "jadwal_sholat",
	"DB_SSLMODE":               "require",
	"MONGO_URI":                "mongodb://localhost:27017",
	"MONGO_DB":                 "jadwal_sholat",
	"CACHE_ENABLED":            false,
	"REDIS_ADDR":               "localhost:6379",
	"REDIS_USERNAME":           "",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"CACHE_TTL_SECONDS":        600,
	"CACHE_STALE_TTL_SECONDS":  86400,
	"EXPORT_DIR":               "dist",
	"EXPORT_BASE_PATH":         "/",
	"EXPORT_CONCURRENCY":       8,
	"EXPORT_DAILY":             false,
	"EXPORT_OSS_PREFIX":        "jadwal",
	"ALI_OSS_ENDPOINT":         "",
	"ALI_OSS_ACCESS_KEY":       "",
	"ALI_OSS_SECRET_KEY":       "",
	"ALI_OSS_SECURITY_TOKEN":   "",
	"ALI_OSS_BUCKET":           "",
	"ALI_OSS_PUBLIC_BASE":      "",
}

// LoadConfig baca config.yaml (opsional, di . atau ./configs) lalu ENV.
// configFile kosong = cari otomatis.
func LoadConfig(configFile string) (Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// file eksplisit wajib ada; pencarian otomatis boleh kosong
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.DataSource = strings.ToLower(strings.TrimSpace(c.DataSource))
	switch c.DataSource {
	case SourceFile:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE wajib diisi untuk DATA_SOURCE=file")
		}
	case SourceRemote:
		if c.UpstreamURL == "" {
			return fmt.Errorf("UPSTREAM_URL wajib diisi untuk DATA_SOURCE=remote")
		}
	case SourcePostgres, SourceMongo:
	default:
		return fmt.Errorf("DATA_SOURCE tidak dikenal: %q (file|remote|postgres|mongo)", c.DataSource)
	}
	if c.ExportConcurrency <= 0 {
		c.ExportConcurrency = 1
	}
	return nil
}

func (c Config) IsProduction() bool { return c.AppEnv == "production" }

func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) CacheStaleTTL() time.Duration {
	return time.Duration(c.CacheStaleTTLSeconds) * time.Second
}

// PostgresDSN: user/password di-escape, aman untuk karakter @ / : dll.
func (c Config) PostgresDSN() string {
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	q.Set("application_name", "jadwalsholat")
	q.Set("options", "-c statement_timeout=3000")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// OSSConfigured true kalau ENV ALI_OSS_* wajib lengkap.
func (c Config) OSSConfigured() bool {
	return c.OSSEndpoint != "" && c.OSSAccessKey != "" && c.OSSSecretKey != "" && c.OSSBucket != ""
}
