package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Printer   PrinterConfig
	Ledger    LedgerConfig
	Auth      AuthConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	LogLevel string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
	// Login is a ulule/limiter formatted rate such as "10-M"
	Login string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type PrinterConfig struct {
	Type    string // usb, network or none
	USBPath string
	Address string
	Width   int
}

type LedgerConfig struct {
	ShopName     string
	Timezone     string
	RateCardPath string
}

// Account is one of the two configured logins
type Account struct {
	Username string
	Password string
}

type AuthConfig struct {
	Admin Account
	User  Account
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "exoticbill")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "exoticbill")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")
	viper.SetDefault("DB_LOG_LEVEL", "warn")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("REDIS_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REPORT_CACHE_TTL_MINUTES", 5)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("SHOP_NAME", "Auto Exotic")
	viper.SetDefault("LEDGER_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("RATE_CARD_PATH", "")
	viper.SetDefault("ADMIN_USERNAME", "AutoExotic")
	viper.SetDefault("ADMIN_PASSWORD", "AutoExotic123")
	viper.SetDefault("USER_USERNAME", "User")
	viper.SetDefault("USER_PASSWORD", "User123")

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			LogLevel: viper.GetString("DB_LOG_LEVEL"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
			Login:    viper.GetString("LOGIN_RATE_LIMIT"),
		},
		Redis: RedisConfig{
			Enabled:  viper.GetBool("REDIS_ENABLED"),
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      time.Duration(viper.GetInt("REPORT_CACHE_TTL_MINUTES")) * time.Minute,
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Ledger: LedgerConfig{
			ShopName:     viper.GetString("SHOP_NAME"),
			Timezone:     viper.GetString("LEDGER_TIMEZONE"),
			RateCardPath: viper.GetString("RATE_CARD_PATH"),
		},
		Auth: AuthConfig{
			Admin: Account{
				Username: viper.GetString("ADMIN_USERNAME"),
				Password: viper.GetString("ADMIN_PASSWORD"),
			},
			User: Account{
				Username: viper.GetString("USER_USERNAME"),
				Password: viper.GetString("USER_PASSWORD"),
			},
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Location resolves the ledger timezone, falling back to UTC
func (c *LedgerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown LEDGER_TIMEZONE %q, using UTC: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}
