package utils

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v2"
)

const DefaultConfigFile = "config.yaml"

type Config struct {
	// Application configuration
	AppPort    string `yaml:"APP_PORT"`
	AppURL     string `yaml:"APP_URL"`
	LogFile    string `yaml:"LOG_FILE"`
	UploadsDir string `yaml:"UPLOADS_DIR"`
	RateLimit  string `yaml:"RATE_LIMIT"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH"`

	// Admin session and claim token keys
	JWTSecret   string `yaml:"JWT_SECRET"`
	TokenSecret string `yaml:"TOKEN_SECRET"`

	// Mailing configuration
	SMTPHost           string `yaml:"SMTP_HOST"`
	SMTPPort           string `yaml:"SMTP_PORT"`
	SMTPSenderName     string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail      string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword   string `yaml:"SMTP_AUTH_PASSWORD"`
	SMTPTimeoutSeconds string `yaml:"SMTP_TIMEOUT_SECONDS"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config   Config
	configMu sync.RWMutex
)

// LoadConfig reads the YAML file at path. A missing file is not an error:
// every key can also come from the environment.
func LoadConfig(path string) error {
	if path == "" {
		path = DefaultConfigFile
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	SetConfig(cfg)
	return nil
}

func SetConfig(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()
	config = cfg
}

// GetConfig returns the value for key. An environment variable of the same
// name takes precedence over the YAML file.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	configMu.RLock()
	defer configMu.RUnlock()

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "LOG_FILE":
		return config.LogFile
	case "UPLOADS_DIR":
		return config.UploadsDir
	case "RATE_LIMIT":
		return config.RateLimit
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_PATH":
		return config.DBPath
	case "JWT_SECRET":
		return config.JWTSecret
	case "TOKEN_SECRET":
		return config.TokenSecret
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "SMTP_TIMEOUT_SECONDS":
		return config.SMTPTimeoutSeconds
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetConfigOr returns fallback when key is unset or empty.
func GetConfigOr(key, fallback string) string {
	if v := GetConfig(key); v != "" {
		return v
	}
	return fallback
}

func GetConfigInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}
