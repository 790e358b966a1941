package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	Env     string `yaml:"env"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	VerifyWindow  string `yaml:"verify_window"`
	ConfirmWindow string `yaml:"confirm_window"`
}

type UploadConfig struct {
	Dir    string `yaml:"dir"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type QueueConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Uploads  UploadConfig   `yaml:"uploads"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Queue    QueueConfig    `yaml:"queue"`
}

type Config struct {
	Port             string
	Env              string
	GinMode          string
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	AccessSecret     string
	RefreshSecret    string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	OtpVerifyWindow  time.Duration
	OtpConfirmWindow time.Duration
	UploadDir        string
	ImageWidth       int
	ImageHeight      int
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
	QueueConcurrency int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for the
// secrets that should not live in the file.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	verifyWnd, err := time.ParseDuration(configFile.OTP.VerifyWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP verify window: %w", err)
	}

	confirmWnd, err := time.ParseDuration(configFile.OTP.ConfirmWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP confirm window: %w", err)
	}

	concurrency := configFile.Queue.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	return &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		Env:              env("APP_ENV", configFile.App.Env),
		GinMode:          configFile.App.GinMode,
		DSN:              env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:        env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:    env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:          configFile.Redis.DB,
		AccessSecret:     env("ACCESS_TOKEN_SECRET", configFile.JWT.AccessSecret),
		RefreshSecret:    env("REFRESH_TOKEN_SECRET", configFile.JWT.RefreshSecret),
		AccessTTL:        accTTL,
		RefreshTTL:       refTTL,
		OtpVerifyWindow:  verifyWnd,
		OtpConfirmWindow: confirmWnd,
		UploadDir:        configFile.Uploads.Dir,
		ImageWidth:       configFile.Uploads.Width,
		ImageHeight:      configFile.Uploads.Height,
		TwilioSID:        env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:       env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		QueueConcurrency: concurrency,
	}, nil
}

// IsProduction reports whether production cookie/security settings apply.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
