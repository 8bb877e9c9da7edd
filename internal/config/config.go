package config

import (
	_ "embed"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Fallback FallbackConfig
	Webhook  WebhookConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Store    StoreConfig
	Client   ClientConfig
	Log      LogConfig
}

// DefaultCredentials is the allow-list shipped with the binary, used when
// CREDENTIALS_FILE is not set.
//
//go:embed credentials.yaml
var DefaultCredentials []byte

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig describes the remote relational store (Supabase Postgres by
// default). An empty host or password leaves the remote tier disabled.
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c DatabaseConfig) Configured() bool {
	return c.Host != "" && c.Password != "" &&
		!IsPlaceholder(c.Host) && !IsPlaceholder(c.Password)
}

type CatalogConfig struct {
	LocalPath string
}

type FallbackConfig struct {
	FilePath string
	Capacity int
}

type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

type StorageConfig struct {
	URL            string
	ServiceRoleKey string
	Bucket         string
	UploadDir      string
	MaxUploadBytes int64
	Timeout        time.Duration
}

func (c StorageConfig) Configured() bool {
	return c.URL != "" && c.ServiceRoleKey != "" &&
		!IsPlaceholder(c.URL) && !IsPlaceholder(c.ServiceRoleKey)
}

type AuthConfig struct {
	CredentialsFile string
}

type StoreConfig struct {
	Name   string
	PixKey string
}

type ClientConfig struct {
	ServerURL       string
	DeviceStorePath string
	Timeout         time.Duration
}

type LogConfig struct {
	Level string
}

// IsPlaceholder reports whether a configuration value is a template value
// that was never filled in.
func IsPlaceholder(value string) bool {
	return strings.Contains(strings.ToLower(value), "placeholder")
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "60s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "60s")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("CATALOG_LOCAL_PATH", ".cache/catalog.db")
	v.SetDefault("ORDERS_FILE_PATH", ".cache/orders.json")
	v.SetDefault("ORDERS_CAPACITY", 100)
	v.SetDefault("WEBHOOK_URL", "")
	v.SetDefault("WEBHOOK_TIMEOUT", "10s")
	v.SetDefault("SUPABASE_URL", "")
	v.SetDefault("SUPABASE_SERVICE_ROLE_KEY", "")
	v.SetDefault("STORAGE_BUCKET", "product-images")
	v.SetDefault("UPLOAD_DIR", "public/uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5*1024*1024)
	v.SetDefault("STORAGE_TIMEOUT", "30s")
	v.SetDefault("CREDENTIALS_FILE", "")
	v.SetDefault("STORE_NAME", "Sabores de Zissou")
	v.SetDefault("PIX_KEY", "11981047422")
	v.SetDefault("SABORES_SERVER_URL", "http://localhost:8080")
	v.SetDefault("DEVICE_STORE_PATH", ".cache/device.db")
	v.SetDefault("CLIENT_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")

	readTimeout, err := time.ParseDuration(v.GetString("SERVER_READ_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	writeTimeout, err := time.ParseDuration(v.GetString("SERVER_WRITE_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	idleTimeout, err := time.ParseDuration(v.GetString("SERVER_IDLE_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	connMaxLifetime, err := time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}
	webhookTimeout, err := time.ParseDuration(v.GetString("WEBHOOK_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	storageTimeout, err := time.ParseDuration(v.GetString("STORAGE_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	clientTimeout, err := time.ParseDuration(v.GetString("CLIENT_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("SERVER_PORT"),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		},
		Database: DatabaseConfig{
			Driver:          NormalizeDriver(v.GetString("DB_DRIVER")),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Catalog: CatalogConfig{
			LocalPath: v.GetString("CATALOG_LOCAL_PATH"),
		},
		Fallback: FallbackConfig{
			FilePath: v.GetString("ORDERS_FILE_PATH"),
			Capacity: v.GetInt("ORDERS_CAPACITY"),
		},
		Webhook: WebhookConfig{
			URL:     v.GetString("WEBHOOK_URL"),
			Timeout: webhookTimeout,
		},
		Storage: StorageConfig{
			URL:            v.GetString("SUPABASE_URL"),
			ServiceRoleKey: v.GetString("SUPABASE_SERVICE_ROLE_KEY"),
			Bucket:         v.GetString("STORAGE_BUCKET"),
			UploadDir:      v.GetString("UPLOAD_DIR"),
			MaxUploadBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
			Timeout:        storageTimeout,
		},
		Auth: AuthConfig{
			CredentialsFile: v.GetString("CREDENTIALS_FILE"),
		},
		Store: StoreConfig{
			Name:   v.GetString("STORE_NAME"),
			PixKey: v.GetString("PIX_KEY"),
		},
		Client: ClientConfig{
			ServerURL:       v.GetString("SABORES_SERVER_URL"),
			DeviceStorePath: v.GetString("DEVICE_STORE_PATH"),
			Timeout:         clientTimeout,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	cfg.Server.WriteTimeout = writeTimeoutFor(cfg)

	return cfg, nil
}

// NormalizeDriver lowercases the driver name; empty means postgres.
func NormalizeDriver(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		return "postgres"
	}
	return driver
}

// writeTimeoutFor keeps the response deadline past the slowest upstream a
// handler may wait on. A submit waits on the remote write and then on the
// webhook; an upload waits on storage.
func writeTimeoutFor(cfg *Config) time.Duration {
	upstream := cfg.Storage.Timeout
	if submit := cfg.Webhook.Timeout + remoteBudget; submit > upstream {
		upstream = submit
	}
	if floor := upstream + writeTimeoutMargin; cfg.Server.WriteTimeout < floor {
		return floor
	}
	return cfg.Server.WriteTimeout
}

const (
	remoteBudget       = 10 * time.Second
	writeTimeoutMargin = 5 * time.Second
)
