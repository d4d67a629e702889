package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Mail     MailConfig
	WhatsApp WhatsAppConfig
	Phone    PhoneConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// MailConfig holds gmail SMTP credentials. An empty or placeholder app
// password leaves the email channel unconfigured.
type MailConfig struct {
	User        string
	AppPassword string
	AdminEmail  string
	SMTPHost    string
	SMTPPort    string
}

// WhatsAppConfig holds Twilio WhatsApp credentials.
type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	From       string
	AdminTo    string
}

type PhoneConfig struct {
	DefaultCountryCode string
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "5000"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "bookmyrepair_db"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Mail: MailConfig{
			User:        getEnv("GMAIL_USER", ""),
			AppPassword: getEnv("GMAIL_APP_PASSWORD", ""),
			AdminEmail:  getEnv("ADMIN_NOTIFICATION_EMAIL", ""),
			SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:    getEnv("SMTP_PORT", "587"),
		},
		WhatsApp: WhatsAppConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			From:       getEnv("TWILIO_WHATSAPP_FROM", ""),
			AdminTo:    getEnv("ADMIN_WHATSAPP_TO", ""),
		},
		Phone: PhoneConfig{
			DefaultCountryCode: getEnv("DEFAULT_COUNTRY_CODE", "+91"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
