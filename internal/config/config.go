package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type Database struct {
	Host     string `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port     string `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User     string `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password string `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name     string `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode  string `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`

	MaxOpenConns    int           `yaml:"PG_MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"PG_MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"PG_CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"30m"`
	ConnMaxIdleTime time.Duration `yaml:"PG_CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"5m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type Security struct {
	JWTKey           string        `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	AccessTokenTTL   time.Duration `yaml:"ACCESS_TOKEN_TTL" env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL  time.Duration `yaml:"REFRESH_TOKEN_TTL" env:"REFRESH_TOKEN_TTL" env-default:"168h"`
	ActivationSecret string        `yaml:"ACTIVATION_SECRET" env:"ACTIVATION_SECRET" env-required:"true"`
	ActivationTTL    time.Duration `yaml:"ACTIVATION_TTL" env:"ACTIVATION_TTL" env-default:"72h"`
}

type SendGrid struct {
	APIKey    string `yaml:"SENDGRID_API_KEY" env:"SENDGRID_API_KEY" env-default:""`
	FromEmail string `yaml:"SENDGRID_FROM_EMAIL" env:"SENDGRID_FROM_EMAIL" env-default:"no-reply@marketplace.local"`
	FromName  string `yaml:"SENDGRID_FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Marketplace"`
}

type Worker struct {
	Workers   int `yaml:"WORKERS" env:"EMAIL_WORKERS" env-default:"2"`
	QueueSize int `yaml:"QUEUE_SIZE" env:"EMAIL_QUEUE_SIZE" env-default:"64"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	Debug        bool   `yaml:"debug" env:"DEBUG" env-default:"false"`
	BaseURL      string `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	Security     Security     `yaml:"security"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	Worker       Worker       `yaml:"worker"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {

			log.Fatal("Config path is not set")

		}

	}

	cfg, err := LoadConfigFromPath(configPath)

	if err != nil {

		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		r.Username, r.Password, r.Host, r.Port, r.DB)
}
