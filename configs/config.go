package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AfricaTalkingConfig struct {
	Username string
	APIKey   string
	SMSURL   string
	SenderID string
}

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	TimeZone   string
	SQLitePath string
}

type OIDCConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether staff login is configured.
func (c OIDCConfig) Enabled() bool {
	return c.Issuer != ""
}

type APIConfig struct {
	Endpoint string
	Timeout  time.Duration
	Key      string
}

type LogConfig struct {
	Heartbeat      string
	LowStock       string
	OrderReminders string
	Report         string
	Scheduler      string
}

type Config struct {
	HTTPAddr      string
	SessionSecret string
	ScheduleFile  string

	Database      DatabaseConfig
	API           APIConfig
	OIDC          OIDCConfig
	Logs          LogConfig
	AfricaTalking AfricaTalkingConfig
	Email         EmailConfig
}

var defaults = map[string]any{
	"HTTP_ADDR":             ":8080",
	"SESSION_SECRET":        "change-me",
	"SCHEDULE_FILE":         "schedule.yaml",
	"DB_DRIVER":             "postgres",
	"POSTGRES_HOST":         "localhost",
	"POSTGRES_USER":         "test",
	"POSTGRES_PASSWORD":     "test",
	"POSTGRES_DB":           "test",
	"DB_PORT":               "5432",
	"DB_TIMEZONE":           "UTC",
	"SQLITE_PATH":           "crm.db",
	"CRM_API_URL":           "http://localhost:8080/graphql",
	"CRM_API_TIMEOUT":       "10s",
	"CRM_API_KEY":           "",
	"OIDC_ISSUER":           "",
	"OIDC_CLIENT_ID":        "",
	"OIDC_CLIENT_SECRET":    "",
	"OIDC_REDIRECT_URL":     "",
	"HEARTBEAT_LOG":         "/tmp/crm_heartbeat_log.txt",
	"LOW_STOCK_LOG":         "/tmp/low_stock_updates_log.txt",
	"ORDER_REMINDERS_LOG":   "/tmp/order_reminders_log.txt",
	"REPORT_LOG":            "/tmp/crm_report_log.txt",
	"SCHEDULER_LOG":         "/tmp/crm_scheduler_log.txt",
	"AT_USERNAME":           "",
	"AT_API_KEY":            "",
	"AT_SMS_URL":            "https://api.sandbox.africastalking.com/version1/messaging",
	"AT_SENDER_ID":          "AFRICASTKNG",
	"AWS_ACCESS_KEY_ID":     "",
	"AWS_SECRET_ACCESS_KEY": "",
	"AWS_REGION":            "us-east-1",
	"AWS_SENDER_ADDRESS":    "",
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("CRM_API_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CRM_API_TIMEOUT %q: %w", v.GetString("CRM_API_TIMEOUT"), err)
	}

	cfg := Config{
		HTTPAddr:      v.GetString("HTTP_ADDR"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		ScheduleFile:  v.GetString("SCHEDULE_FILE"),
		Database: DatabaseConfig{
			Driver:     v.GetString("DB_DRIVER"),
			Host:       v.GetString("POSTGRES_HOST"),
			User:       v.GetString("POSTGRES_USER"),
			Password:   v.GetString("POSTGRES_PASSWORD"),
			Name:       v.GetString("POSTGRES_DB"),
			Port:       v.GetString("DB_PORT"),
			TimeZone:   v.GetString("DB_TIMEZONE"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		API: APIConfig{
			Endpoint: v.GetString("CRM_API_URL"),
			Timeout:  timeout,
			Key:      v.GetString("CRM_API_KEY"),
		},
		OIDC: OIDCConfig{
			Issuer:       v.GetString("OIDC_ISSUER"),
			ClientID:     v.GetString("OIDC_CLIENT_ID"),
			ClientSecret: v.GetString("OIDC_CLIENT_SECRET"),
			RedirectURL:  v.GetString("OIDC_REDIRECT_URL"),
		},
		Logs: LogConfig{
			Heartbeat:      v.GetString("HEARTBEAT_LOG"),
			LowStock:       v.GetString("LOW_STOCK_LOG"),
			OrderReminders: v.GetString("ORDER_REMINDERS_LOG"),
			Report:         v.GetString("REPORT_LOG"),
			Scheduler:      v.GetString("SCHEDULER_LOG"),
		},
		AfricaTalking: AfricaTalkingConfig{
			Username: v.GetString("AT_USERNAME"),
			APIKey:   v.GetString("AT_API_KEY"),
			SMSURL:   v.GetString("AT_SMS_URL"),
			SenderID: v.GetString("AT_SENDER_ID"),
		},
		Email: EmailConfig{
			AWSAccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			AWSRegion:          v.GetString("AWS_REGION"),
			SenderEmail:        v.GetString("AWS_SENDER_ADDRESS"),
		},
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, nil
}
