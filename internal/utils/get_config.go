package utils

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"worthy-waste/domain"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// App and mailing configuration
	AppURL           string `yaml:"APP_URL"`
	AppPort          string `yaml:"APP_PORT"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// Midtrans configuration
	ClientKey string `yaml:"CLIENT_KEY"`
	ServerKey string `yaml:"SERVER_KEY"`
	IsProd    bool   `yaml:"IsProd"`

	// AWS S3 configuration, endpoint is set for MinIO or other S3 compatible stores
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`

	// Redis and Kafka are optional, empty values disable them
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	KafkaBrokers  string `yaml:"KAFKA_BROKERS"`
	KafkaTopic    string `yaml:"KAFKA_TOPIC"`

	// Buyer catalogue override
	Buyers []domain.Buyer `yaml:"BUYERS"`
}

var config Config

// LoadConfig reads config.yaml and .env from the working directory.
func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

// LoadConfigFrom reads the YAML file at path, then lets non-empty environment
// variables override individual keys.
func LoadConfigFrom(path string) {
	_ = godotenv.Load()

	config = Config{}
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err = yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	applyEnv()
}

func applyEnv() {
	for key, field := range stringFields() {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
	if v := os.Getenv("IS_PROD"); v != "" {
		config.IsProd = strings.EqualFold(v, "true")
	}
}

func stringFields() map[string]*string {
	return map[string]*string{
		"DB_USER":            &config.DBUser,
		"DB_NAME":            &config.DBName,
		"DB_PASSWORD":        &config.DBPassword,
		"DB_PORT":            &config.DBPort,
		"DB_HOST":            &config.DBHost,
		"JWT_SECRET":         &config.JWTSecret,
		"APP_URL":            &config.AppURL,
		"APP_PORT":           &config.AppPort,
		"SMTP_HOST":          &config.SMTPHost,
		"SMTP_PORT":          &config.SMTPPort,
		"SMTP_SENDER_NAME":   &config.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &config.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &config.SMTPAuthPassword,
		"CLIENT_KEY":         &config.ClientKey,
		"SERVER_KEY":         &config.ServerKey,
		"AWS_S3_BUCKET":      &config.AWSS3Bucket,
		"AWS_S3_REGION":      &config.AWSS3Region,
		"AWS_ACCESS_KEY":     &config.AWSAccessKey,
		"AWS_SECRET_KEY":     &config.AWSSecretKey,
		"AWS_S3_ENDPOINT":    &config.AWSS3Endpoint,
		"REDIS_ADDR":         &config.RedisAddr,
		"REDIS_PASSWORD":     &config.RedisPassword,
		"KAFKA_BROKERS":      &config.KafkaBrokers,
		"KAFKA_TOPIC":        &config.KafkaTopic,
	}
}

func GetConfig(key string) string {
	if key == "IsProd" || key == "IS_PROD" {
		if config.IsProd {
			return "true"
		}
		return "false"
	}
	if field, ok := stringFields()[key]; ok {
		return *field
	}
	return ""
}

// GetBuyers returns the buyer catalogue configured in YAML, if any.
func GetBuyers() []domain.Buyer {
	return config.Buyers
}

// GetKafkaBrokers splits the comma separated broker list.
func GetKafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(config.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
