package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Question-edit policies applied when a quiz group's questions are replaced.
const (
	EditPolicyForbid  = "forbid"
	EditPolicyVersion = "version"
)

type Config struct {
	Server struct {
		Port           string `yaml:"port"`
		AllowedOrigins string `yaml:"allowedOrigins"`
		MaxUploadBytes int    `yaml:"maxUploadBytes"`
		PublicURL      string `yaml:"publicUrl"`
		FrontendURL    string `yaml:"frontendUrl"`
	} `yaml:"server"`
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Google struct {
		ClientID     string `yaml:"clientId"`
		ClientSecret string `yaml:"clientSecret"`
		RedirectURL  string `yaml:"redirectUrl"`
	} `yaml:"google"`
	JWT struct {
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"`
	} `yaml:"jwt"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Quiz struct {
		CacheTTL         string `yaml:"cacheTtl"`
		EditPolicy       string `yaml:"editPolicy"`
		ArchiveRetention string `yaml:"archiveRetention"`
		MaintenanceCron  string `yaml:"maintenanceCron"`
	} `yaml:"quiz"`
	Storage struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"accessKey"`
		SecretKey string `yaml:"secretKey"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"useSSL"`
	} `yaml:"storage"`
}

// Load reads .env, then the optional YAML file at path, then environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8888"
	cfg.Server.AllowedOrigins = "*"
	cfg.Server.MaxUploadBytes = 4 << 20
	cfg.Server.PublicURL = "http://localhost:3000"
	cfg.Server.FrontendURL = "http://localhost:3000"
	cfg.Mongo.Database = "SchoolhubDB"
	cfg.JWT.Secret = "your_secret_key"
	cfg.JWT.TTL = "24h"
	cfg.Log.Level = "info"
	cfg.Log.File = "logs/app.log"
	cfg.Quiz.CacheTTL = "5m"
	cfg.Quiz.EditPolicy = EditPolicyForbid
	cfg.Quiz.ArchiveRetention = "0"
	cfg.Quiz.MaintenanceCron = "@every 15m"
	cfg.Storage.Bucket = "schoolhub"
	return cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "APP_URI")
	setString(&cfg.Server.AllowedOrigins, "ALLOWED_ORIGINS")
	setInt(&cfg.Server.MaxUploadBytes, "MAX_UPLOAD_BYTES")
	setString(&cfg.Server.PublicURL, "PUBLIC_APP_URL")
	setString(&cfg.Server.FrontendURL, "FRONTEND_URL")
	setString(&cfg.Google.ClientID, "GOOGLE_CLIENT_ID")
	setString(&cfg.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setString(&cfg.Google.RedirectURL, "GOOGLE_REDIRECT")
	setString(&cfg.Mongo.URI, "MONGO_URI")
	setString(&cfg.Mongo.Database, "MONGO_DB")
	setString(&cfg.Redis.Addr, "REDIS_URI")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.JWT.TTL, "JWT_TTL")
	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.File, "LOG_FILE")
	setString(&cfg.Quiz.CacheTTL, "QUIZ_CACHE_TTL")
	setString(&cfg.Quiz.EditPolicy, "QUIZ_QUESTION_EDIT_POLICY")
	setString(&cfg.Quiz.ArchiveRetention, "QUIZ_ARCHIVE_RETENTION")
	setString(&cfg.Quiz.MaintenanceCron, "MAINTENANCE_CRON")
	setString(&cfg.Storage.Endpoint, "S3_ENDPOINT")
	setString(&cfg.Storage.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "S3_SECRET_KEY")
	setString(&cfg.Storage.Bucket, "S3_BUCKET")
	if v := os.Getenv("S3_USE_SSL"); v != "" {
		cfg.Storage.UseSSL, _ = strconv.ParseBool(v)
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate rejects values the services cannot run with.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("MONGO_URI is not set")
	}
	switch c.Quiz.EditPolicy {
	case EditPolicyForbid, EditPolicyVersion:
	default:
		return fmt.Errorf("unknown question edit policy %q", c.Quiz.EditPolicy)
	}
	for name, raw := range map[string]string{
		"jwt ttl":                c.JWT.TTL,
		"quiz cache ttl":         c.Quiz.CacheTTL,
		"quiz archive retention": c.Quiz.ArchiveRetention,
	} {
		if _, err := parseDuration(raw); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, raw, err)
		}
	}
	return nil
}

func (c *Config) JWTTTL() time.Duration           { return mustDuration(c.JWT.TTL) }
func (c *Config) QuizCacheTTL() time.Duration     { return mustDuration(c.Quiz.CacheTTL) }
func (c *Config) ArchiveRetention() time.Duration { return mustDuration(c.Quiz.ArchiveRetention) }

// GoogleEnabled reports whether Google sign-in is configured.
func (c *Config) GoogleEnabled() bool { return c.Google.ClientID != "" && c.Google.ClientSecret != "" }

// StorageEnabled reports whether object storage for uploaded question files is configured.
func (c *Config) StorageEnabled() bool { return c.Storage.Endpoint != "" }

func parseDuration(raw string) (time.Duration, error) {
	if raw == "" || raw == "0" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}

func mustDuration(raw string) time.Duration {
	d, _ := parseDuration(raw)
	return d
}
