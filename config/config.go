package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultLeadTime is the minimum gap between now and a bookable slot.
const DefaultLeadTime = 15 * time.Minute

type DBConfig struct {
	Driver string // mysql or sqlite
	URL    string
	Host   string
	Port   string
	User   string
	Pass   string
	Name   string
	Path   string // sqlite file
}

type EmailConfig struct {
	Provider       string // api or smtp
	APIKey         string
	APIURL         string
	SMTPHost       string
	SMTPPort       string
	SMTPUser       string
	SMTPPass       string
	From           string
	AdminEmail     string
	RetryBaseDelay time.Duration
}

// Enabled reports whether a transport has enough settings to send mail.
func (e EmailConfig) Enabled() bool {
	switch e.Provider {
	case "smtp":
		return e.SMTPHost != "" && e.SMTPPort != ""
	default:
		return e.APIKey != ""
	}
}

type Config struct {
	Port           string
	GinMode        string
	SiteURL        string
	RestaurantName string
	Location       *time.Location
	LeadTime       time.Duration
	AllowedOrigins []string
	BookingRPS     float64
	BookingBurst   int
	LogLevel       string
	LogFormat      string
	DB             DBConfig
	Email          EmailConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional, real deployments pass plain env vars
	_ = godotenv.Load()

	cfg := &Config{
		Port:           String("PORT", "8080"),
		GinMode:        String("GIN_MODE", "debug"),
		SiteURL:        strings.TrimRight(String("SITE_URL", "http://localhost:3000"), "/"),
		RestaurantName: String("RESTAURANT_NAME", "Our Restaurant"),
		AllowedOrigins: List("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		LogLevel:       String("LOG_LEVEL", "info"),
		LogFormat:      String("LOG_FORMAT", "text"),
		DB: DBConfig{
			Driver: String("DB_DRIVER", "mysql"),
			URL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
			Host:   String("DB_HOST", "127.0.0.1"),
			Port:   String("DB_PORT", "3306"),
			User:   String("DB_USER", "root"),
			Pass:   os.Getenv("DB_PASS"),
			Name:   String("DB_NAME", "restaurant_db"),
			Path:   String("DB_PATH", "reservations.db"),
		},
		Email: EmailConfig{
			Provider:   String("EMAIL_PROVIDER", "api"),
			APIKey:     strings.TrimSpace(os.Getenv("EMAIL_API_KEY")),
			APIURL:     String("EMAIL_API_URL", "https://api.resend.com/emails"),
			SMTPHost:   strings.TrimSpace(os.Getenv("SMTP_HOST")),
			SMTPPort:   strings.TrimSpace(os.Getenv("SMTP_PORT")),
			SMTPUser:   strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
			SMTPPass:   os.Getenv("SMTP_PASSWORD"),
			From:       String("EMAIL_FROM", "reservations@localhost"),
			AdminEmail: strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		},
	}

	var err error
	if cfg.LeadTime, err = Duration("BOOKING_LEAD_TIME", DefaultLeadTime); err != nil {
		return nil, err
	}
	if cfg.Email.RetryBaseDelay, err = Duration("EMAIL_RETRY_BASE_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.BookingRPS, err = Float("BOOKING_RATE_LIMIT", 0.2); err != nil {
		return nil, err
	}
	if cfg.BookingBurst, err = Int("BOOKING_RATE_BURST", 5); err != nil {
		return nil, err
	}

	tz := String("RESTAURANT_TIMEZONE", "UTC")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("RESTAURANT_TIMEZONE: %w", err)
	}

	if p, err := strconv.Atoi(cfg.Port); err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("PORT must be a valid TCP port (got %q)", cfg.Port)
	}

	return cfg, nil
}

func String(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func List(key string, fallback []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func Duration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s must be a non-negative duration (got %q)", key, v)
	}
	return d, nil
}

func Int(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q)", key, v)
	}
	return n, nil
}

func Float(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number (got %q)", key, v)
	}
	return f, nil
}
