package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		URL             string `yaml:"url" env:"DATABASE_URL"` // Takes precedence over the discrete fields
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret" env:"SECRET_KEY"`
		// Empty or "0" issues tokens without expiry
		Expiration string `yaml:"expiration" env:"JWT_EXPIRATION"`
		Issuer     string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Admin struct {
		FullName string `yaml:"full_name" env:"ADMIN_FULLNAME"`
		Email    string `yaml:"email" env:"ADMIN_EMAIL"`
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	} `yaml:"admin"`

	Project struct {
		MaxStudents         int `yaml:"max_students" env:"PROJECT_MAX_STUDENTS"`
		MaxProjectsPerGuide int `yaml:"max_projects_per_guide" env:"PROJECT_MAX_PER_GUIDE"`
	} `yaml:"project"`

	Upload struct {
		MaxProfileImageBytes int64 `yaml:"max_profile_image_bytes" env:"UPLOAD_MAX_PROFILE_IMAGE_BYTES"`
	} `yaml:"upload"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, a .env file and environment variables.
// Later sources override earlier ones.
func LoadConfig(configPath, dotEnvPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Existing environment variables win over .env entries
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", dotEnvPath, err)
			}
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "capstone"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.Issuer = "capstone"

	config.Project.MaxStudents = 2
	config.Project.MaxProjectsPerGuide = 12

	config.Upload.MaxProfileImageBytes = 14 << 20

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.URL == "" && config.Database.Host == "" {
		return fmt.Errorf("database host or url is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := config.TokenExpiration(); err != nil {
		return fmt.Errorf("invalid JWT expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}

	if config.Project.MaxStudents <= 0 || config.Project.MaxProjectsPerGuide <= 0 {
		return fmt.Errorf("project limits must be positive")
	}

	if config.Upload.MaxProfileImageBytes <= 0 {
		return fmt.Errorf("max profile image size must be positive")
	}

	return nil
}

// TokenExpiration returns the configured session lifetime; zero means no expiry.
func (c *Config) TokenExpiration() (time.Duration, error) {
	if c.JWT.Expiration == "" || c.JWT.Expiration == "0" {
		return 0, nil
	}
	return time.ParseDuration(c.JWT.Expiration)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
