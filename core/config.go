package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Engine        string
		Host          string
		Port          int
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	ServerConfig struct {
		Host            string
		DebugHost       string
		ShutdownTimeout time.Duration
		CORSOrigins     []string
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
		QuizTTL  time.Duration
	}

	RazorpayConfig struct {
		KeyID     string
		KeySecret string
		BaseURL   string
	}

	Config struct {
		Env                string
		Debug              bool
		TestMode           bool
		AppName            string
		Build              string
		WorkDir            string
		SecretKey          string
		JWTExpirationDelta time.Duration
		FrontendBaseURL    string
		DefaultFromEmail   string
		RollbarToken       string
		SendgridAPIKey     string

		Server   ServerConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Razorpay RazorpayConfig
	}
)

// Address returns the "host:port" of the database server.
func (dc DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", dc.Host, dc.Port)
}

// NewConfig loads the application configuration.
// Values come from the environment (prefixed with the ENV name, eg. DEV_SECRET_KEY),
// optionally seeded from `config/.env.<env>` when that file exists.
func NewConfig() *Config {
	conf := viper.New()

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", env == "DEV")
	conf.SetDefault("test_mode", env == "TEST")
	conf.SetDefault("app_name", "EduRoot")
	conf.SetDefault("build", "develop")
	conf.SetDefault("secret_key", "your-secret-key-change-in-production")
	conf.SetDefault("jwt_expiration_delta", 30*24*time.Hour)
	conf.SetDefault("frontend_base_url", "http://localhost:3000")
	conf.SetDefault("default_from_email", "EduRoot <noreply@educationroot.com>")
	conf.SetDefault("rollbar_token", "")
	conf.SetDefault("sendgrid_api_key", "")

	conf.SetDefault("server_host", ":8000")
	conf.SetDefault("server_debug_host", ":4000")
	conf.SetDefault("server_shutdown_timeout", 5*time.Second)
	conf.SetDefault("cors_origins", "*")

	conf.SetDefault("database_engine", "postgres")
	conf.SetDefault("database_host", "localhost")
	conf.SetDefault("database_port", 5432)
	conf.SetDefault("database_name", "eduroot")
	conf.SetDefault("database_user", "eduroot")
	conf.SetDefault("database_password", "")
	conf.SetDefault("database_admin_user", "")
	conf.SetDefault("database_admin_password", "")
	conf.SetDefault("database_disable_tls", env == "DEV" || env == "TEST")

	conf.SetDefault("redis_addr", "")
	conf.SetDefault("redis_password", "")
	conf.SetDefault("redis_db", 0)
	conf.SetDefault("redis_quiz_ttl", 10*time.Minute)

	conf.SetDefault("razorpay_key_id", "rzp_test_placeholder")
	conf.SetDefault("razorpay_key_secret", "placeholder_secret")
	conf.SetDefault("razorpay_base_url", "https://api.razorpay.com")

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd: %v", err)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	conf.SetEnvPrefix(env)
	conf.AutomaticEnv()

	return &Config{
		Env:                env,
		Debug:              conf.GetBool("debug"),
		TestMode:           conf.GetBool("test_mode"),
		AppName:            conf.GetString("app_name"),
		Build:              conf.GetString("build"),
		WorkDir:            wd,
		SecretKey:          conf.GetString("secret_key"),
		JWTExpirationDelta: conf.GetDuration("jwt_expiration_delta"),
		FrontendBaseURL:    conf.GetString("frontend_base_url"),
		DefaultFromEmail:   conf.GetString("default_from_email"),
		RollbarToken:       conf.GetString("rollbar_token"),
		SendgridAPIKey:     conf.GetString("sendgrid_api_key"),
		Server: ServerConfig{
			Host:            conf.GetString("server_host"),
			DebugHost:       conf.GetString("server_debug_host"),
			ShutdownTimeout: conf.GetDuration("server_shutdown_timeout"),
			CORSOrigins:     splitList(conf.GetString("cors_origins")),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("database_engine"),
			Host:          conf.GetString("database_host"),
			Port:          conf.GetInt("database_port"),
			Name:          conf.GetString("database_name"),
			User:          conf.GetString("database_user"),
			Password:      conf.GetString("database_password"),
			AdminUser:     conf.GetString("database_admin_user"),
			AdminPassword: conf.GetString("database_admin_password"),
			DisableTLS:    conf.GetBool("database_disable_tls"),
		},
		Redis: RedisConfig{
			Addr:     conf.GetString("redis_addr"),
			Password: conf.GetString("redis_password"),
			DB:       conf.GetInt("redis_db"),
			QuizTTL:  conf.GetDuration("redis_quiz_ttl"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     conf.GetString("razorpay_key_id"),
			KeySecret: conf.GetString("razorpay_key_secret"),
			BaseURL:   conf.GetString("razorpay_base_url"),
		},
	}
}

// NewTestConfig returns a Config suitable for tests; nothing is read from the environment.
func NewTestConfig() *Config {
	return &Config{
		Env:                "TEST",
		TestMode:           true,
		AppName:            "EduRoot",
		Build:              "test",
		SecretKey:          "secret",
		JWTExpirationDelta: 30 * 24 * time.Hour,
		FrontendBaseURL:    "http://localhost:3000",
		DefaultFromEmail:   "EduRoot <noreply@localhost>",
		Server: ServerConfig{
			ShutdownTimeout: time.Second,
			CORSOrigins:     []string{"*"},
		},
		Redis: RedisConfig{QuizTTL: time.Minute},
		Razorpay: RazorpayConfig{
			KeyID:     "rzp_test_key",
			KeySecret: "rzp_test_secret",
		},
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			list = append(list, p)
		}
	}
	return list
}
