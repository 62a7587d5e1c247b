package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Document store selection: "firestore", "mongo" or "memory".
	StoreBackend string `mapstructure:"STORE_BACKEND"`

	// Firebase / Firestore.
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Fixtures and collections.
	CategoriesFile     string `mapstructure:"CATEGORIES_FILE"`
	ServicesFile       string `mapstructure:"SERVICES_FILE"`
	BookingsCollection string `mapstructure:"BOOKINGS_COLLECTION"`

	// Placeholder images.
	PlaceholderHost string `mapstructure:"PLACEHOLDER_HOST"`
	PlaceholderBg   string `mapstructure:"PLACEHOLDER_BG"`
	PlaceholderFg   string `mapstructure:"PLACEHOLDER_FG"`
	MediaRoot       string `mapstructure:"MEDIA_ROOT"`

	// Cloudinary configuration.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`

	SeedLockEnabled bool          `mapstructure:"SEED_LOCK_ENABLED"`
	SeedLockTTL     time.Duration `mapstructure:"SEED_LOCK_TTL"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORE_BACKEND", "firestore")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "bookingdesk")
	v.SetDefault("CATEGORIES_FILE", "data/categories.json")
	v.SetDefault("SERVICES_FILE", "data/services.json")
	v.SetDefault("BOOKINGS_COLLECTION", "bookings")
	v.SetDefault("PLACEHOLDER_HOST", "via.placeholder.com")
	v.SetDefault("PLACEHOLDER_BG", "4F46E5")
	v.SetDefault("PLACEHOLDER_FG", "ffffff")
	v.SetDefault("MEDIA_ROOT", "public")
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
	v.SetDefault("CLOUDINARY_FOLDER", "bookingdesk/services")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_LOCK_DB", 3)
	v.SetDefault("SEED_LOCK_ENABLED", false)
	v.SetDefault("SEED_LOCK_TTL", 5*time.Minute)
}

// Load reads configuration from an optional config.yaml in the current or
// "config" directory, overridden by environment variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("config: failed to read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to decode config: %w", err)
	}
	return cfg, nil
}

func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
