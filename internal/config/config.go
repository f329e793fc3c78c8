package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Upstream  UpstreamConfig
	Branding  BrandingConfig
	Print     PrintConfig
	Printer   PrinterConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool

	// TrustedProxies may set X-Forwarded-For. Empty trusts none.
	TrustedProxies  []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

// UpstreamConfig points at the temple backend REST API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// BrandingConfig is the branding used until a settings fetch succeeds.
type BrandingConfig struct {
	Name       string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
	Email      string
	LogoURL    string
}

type PrintConfig struct {
	CurrencySymbol string
	CurrencyName   string
	Numbering      string
	WindowTTL      time.Duration
	WindowMaxOpen  int
	NavigateDelay  time.Duration
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	CharWidth int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),

			TrustedProxies:  viper.GetStringSlice("TRUSTED_PROXIES"),
			ShutdownTimeout: time.Duration(viper.GetInt("APP_SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		Upstream: UpstreamConfig{
			BaseURL: viper.GetString("UPSTREAM_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("UPSTREAM_TIMEOUT_SECONDS")) * time.Second,
		},
		Branding: BrandingConfig{
			Name:       viper.GetString("TEMPLE_NAME"),
			Address:    viper.GetString("TEMPLE_ADDRESS"),
			City:       viper.GetString("TEMPLE_CITY"),
			State:      viper.GetString("TEMPLE_STATE"),
			PostalCode: viper.GetString("TEMPLE_POSTAL_CODE"),
			Country:    viper.GetString("TEMPLE_COUNTRY"),
			Phone:      viper.GetString("TEMPLE_PHONE"),
			Email:      viper.GetString("TEMPLE_EMAIL"),
			LogoURL:    viper.GetString("TEMPLE_LOGO_URL"),
		},
		Print: PrintConfig{
			CurrencySymbol: viper.GetString("PRINT_CURRENCY_SYMBOL"),
			CurrencyName:   viper.GetString("PRINT_CURRENCY_NAME"),
			Numbering:      viper.GetString("PRINT_NUMBERING"),
			WindowTTL:      time.Duration(viper.GetInt("PRINT_WINDOW_TTL_SECONDS")) * time.Second,
			WindowMaxOpen:  viper.GetInt("PRINT_WINDOW_MAX_OPEN"),
			NavigateDelay:  time.Duration(viper.GetInt("PRINT_NAVIGATE_DELAY_MS")) * time.Millisecond,
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			CharWidth: viper.GetInt("PRINTER_CHAR_WIDTH"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "temple-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_SHUTDOWN_TIMEOUT_SECONDS", 15)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "temple_print")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kuala_Lumpur")
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:3000/api")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 15)
	viper.SetDefault("TEMPLE_NAME", "Temple")
	viper.SetDefault("TEMPLE_ADDRESS", "")
	viper.SetDefault("TEMPLE_CITY", "")
	viper.SetDefault("TEMPLE_STATE", "")
	viper.SetDefault("TEMPLE_POSTAL_CODE", "")
	viper.SetDefault("TEMPLE_COUNTRY", "")
	viper.SetDefault("TEMPLE_PHONE", "")
	viper.SetDefault("TEMPLE_EMAIL", "")
	viper.SetDefault("TEMPLE_LOGO_URL", "")
	viper.SetDefault("PRINT_CURRENCY_SYMBOL", "RM")
	viper.SetDefault("PRINT_CURRENCY_NAME", "Ringgit")
	viper.SetDefault("PRINT_NUMBERING", "short")
	viper.SetDefault("PRINT_WINDOW_TTL_SECONDS", 300)
	viper.SetDefault("PRINT_WINDOW_MAX_OPEN", 64)
	viper.SetDefault("PRINT_NAVIGATE_DELAY_MS", 100)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_CHAR_WIDTH", 48)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
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
