package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds every setting the server reads from the environment.
type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	DB   DBConfig
	SMTP SMTPConfig

	JWTSecret        string        `env:"JWT_SECRET"`
	TokenTTL         time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	RequireAdminAuth bool          `env:"REQUIRE_ADMIN_AUTH" envDefault:"false"`

	UploadDir           string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxUploadMB         int64         `env:"MAX_UPLOAD_MB" envDefault:"20"`
	UploadMaxAge        time.Duration `env:"UPLOAD_MAX_AGE" envDefault:"1h"`
	UploadSweepSchedule string        `env:"UPLOAD_SWEEP_SCHEDULE" envDefault:"@every 30m"`

	RunMigrations bool     `env:"RUN_MIGRATIONS" envDefault:"true"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN renders the lib/pq key=value connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=%s",
		c.User, c.Password, c.Name, c.Host, c.Port, c.SSLMode)
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.hostinger.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"465"`
	Username string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`
	// NotifyTo receives the internal copy of every quotation request.
	NotifyTo    string `env:"NOTIFY_EMAIL" envDefault:"info@aspireths.com"`
	CompanyName string `env:"COMPANY_NAME" envDefault:"Aspire TekHub"`
}

// MaxUploadBytes is the largest PDF accepted by the intake endpoint.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Load reads an optional .env file and then parses the process environment.
// Values already present in the environment win over the .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using process environment: %v", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
