package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"PORT" env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"15s"`
	MaxUploadSize   int64         `yaml:"max_upload_size" env:"HTTP_MAX_UPLOAD_SIZE" env-default:"10485760"`
}

type MongoDBConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	User     string `yaml:"user" env:"MONGO_USER"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"shop_o"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type NATSConfig struct {
	// Empty URL disables event publishing.
	URL string `yaml:"url" env:"NATS_URL"`
}

type TokenConfig struct {
	ActivationSecret string        `yaml:"activation_secret" env:"ACTIVATION_SECRET" env-required:"true"`
	ActivationTTL    time.Duration `yaml:"activation_ttl" env:"ACTIVATION_TTL" env-default:"5m"`
	SessionSecret    string        `yaml:"session_secret" env:"JWT_SECRET_KEY" env-required:"true"`
	SessionTTL       time.Duration `yaml:"session_ttl" env:"JWT_EXPIRES" env-default:"168h"`
	// Sent with the session cookie; set to false only for plain-HTTP local development.
	SecureCookie bool `yaml:"secure_cookie" env:"SECURE_COOKIE" env-default:"true"`
}

type ActivationConfig struct {
	// Frontend origin the emailed activation link points at.
	BaseURL string `yaml:"base_url" env:"ACTIVATION_BASE_URL" env-default:"http://localhost:3000"`
}

type SMTPConfig struct {
	Host        string        `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port        int           `yaml:"port" env:"SMTP_PORT" env-default:"465"`
	Username    string        `yaml:"username" env:"SMTP_MAIL"`
	Password    string        `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string        `yaml:"sender_email" env:"SMTP_SENDER_EMAIL"`
	Encryption  string        `yaml:"encryption" env:"SMTP_ENCRYPTION" env-default:"ssl"`
	ServerName  string        `yaml:"server_name" env:"SMTP_SERVER_NAME"`
	SendTimeout time.Duration `yaml:"send_timeout" env:"SMTP_SEND_TIMEOUT" env-default:"15s"`
}

type MailerSendConfig struct {
	APIKey    string `yaml:"api_key" env:"MAILERSEND_API_KEY"`
	FromEmail string `yaml:"from_email" env:"MAILERSEND_FROM_EMAIL"`
	FromName  string `yaml:"from_name" env:"MAILERSEND_FROM_NAME" env-default:"Shop-O"`
}

type MailConfig struct {
	// "smtp" or "mailersend".
	Provider   string           `yaml:"provider" env:"MAIL_PROVIDER" env-default:"smtp"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	MailerSend MailerSendConfig `yaml:"mailersend"`
}

type StorageConfig struct {
	// "local" or "minio".
	Driver    string      `yaml:"driver" env:"STORAGE_DRIVER" env-default:"local"`
	UploadDir string      `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"uploads"`
	MinIO     MinIOConfig `yaml:"minio"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY" env-default:"minioadmin"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY" env-default:"minioadmin"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"avatars"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
}

type ProductCacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"PRODUCT_CACHE_TTL" env-default:"5m"`
}

type TracingConfig struct {
	// Empty endpoint keeps the no-op tracer provider.
	Endpoint string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	ServiceName  string             `yaml:"service_name" env:"SERVICE_NAME" env-default:"shop_o"`
	HTTPServer   HTTPServerConfig   `yaml:"http_server"`
	MongoDB      MongoDBConfig      `yaml:"mongo"`
	Redis        RedisConfig        `yaml:"redis"`
	NATS         NATSConfig         `yaml:"nats"`
	Token        TokenConfig        `yaml:"token"`
	Activation   ActivationConfig   `yaml:"activation"`
	Mail         MailConfig         `yaml:"mail"`
	Storage      StorageConfig      `yaml:"storage"`
	ProductCache ProductCacheConfig `yaml:"product_cache"`
	Tracing      TracingConfig      `yaml:"tracing"`
	Logger       LoggerConfig       `yaml:"logger"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		err := cleanenv.ReadEnv(&cfg)
		if err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			log.Printf("Warning: Config file not found at %s, attempting to load from environment variables only.", path)
			errEnv := cleanenv.ReadEnv(&cfg)
			if errEnv != nil {
				return nil, errEnv
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
