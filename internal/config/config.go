package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Image     ImageConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// StoreConfig selects and parameterizes the Record Store backend.
// Backend is one of "file", "sqlite", "postgres".
type StoreConfig struct {
	Backend    string
	DataDir    string // file backend
	SQLitePath string // sqlite backend
	Postgres   PostgresConfig
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
}

// ImageConfig selects and parameterizes the Image Store backend.
// Backend is one of "local", "supabase".
type ImageConfig struct {
	Backend        string
	UploadsDir     string // local backend
	BaseURL        string // prefix for locally issued URLs
	MaxUploadBytes int64
	Supabase       SupabaseConfig
}

type SupabaseConfig struct {
	URL    string
	Key    string
	Bucket string
}

// RedisConfig backs the public-endpoint rate limiter. An empty Addr
// disables rate limiting.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	RequestsPerWindow int
	WindowSeconds     int
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("STORE_BACKEND", "sqlite")
	viper.SetDefault("STORE_DATA_DIR", "data")
	viper.SetDefault("SQLITE_PATH", "data/noviqueen.db")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SCHEMA", "public")
	viper.SetDefault("IMAGE_BACKEND", "local")
	viper.SetDefault("UPLOADS_DIR", "uploads")
	viper.SetDefault("IMAGE_BASE_URL", "")
	viper.SetDefault("MAX_UPLOAD_BYTES", 5*1024*1024)
	viper.SetDefault("SUPABASE_BUCKET", "product-images")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 20)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: splitOrigins(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Store: StoreConfig{
			Backend:    viper.GetString("STORE_BACKEND"),
			DataDir:    viper.GetString("STORE_DATA_DIR"),
			SQLitePath: viper.GetString("SQLITE_PATH"),
			Postgres: PostgresConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				Database: viper.GetString("DB_DATABASE"),
				Schema:   viper.GetString("DB_SCHEMA"),
			},
		},
		Image: ImageConfig{
			Backend:        viper.GetString("IMAGE_BACKEND"),
			UploadsDir:     viper.GetString("UPLOADS_DIR"),
			BaseURL:        viper.GetString("IMAGE_BASE_URL"),
			MaxUploadBytes: viper.GetInt64("MAX_UPLOAD_BYTES"),
			Supabase: SupabaseConfig{
				URL:    viper.GetString("SUPABASE_URL"),
				Key:    viper.GetString("SUPABASE_ANON_KEY"),
				Bucket: viper.GetString("SUPABASE_BUCKET"),
			},
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: viper.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds:     viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
	}
	return cfg
}

func splitOrigins(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
