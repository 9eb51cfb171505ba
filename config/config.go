package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Port   string
	AppEnv string

	StoreDriver     string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	RedisPassword   string
	CartTTL         time.Duration
	JWTSecret       string
	JWTTTL          time.Duration
	AllowedOrigins  []string
	LoginRatePerMin int
	TrackURL        string

	EmailProvider    string
	PostmarkToken    string
	SendGridKey      string
	EmailSender      string
	AdminNotifyEmail string

	AdminEmail    string
	AdminPassword string

	KafkaBrokers []string
	KafkaTopic   string

	Store StoreIdentity
}

// StoreIdentity seeds the default store settings.
type StoreIdentity struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found. Proceeding with environment variables.")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Port:             v.GetString("PORT"),
		AppEnv:           v.GetString("APP_ENV"),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:         v.GetString("MONGODB_URI"),
		MongoDatabase:    v.GetString("MONGODB_DATABASE"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		CartTTL:          v.GetDuration("CART_TTL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		AllowedOrigins:   splitList(v.GetString("ALLOWED_ORIGINS")),
		LoginRatePerMin:  v.GetInt("LOGIN_RATE_PER_MINUTE"),
		TrackURL:         strings.TrimSuffix(v.GetString("TRACK_URL"), "/"),
		EmailProvider:    strings.ToLower(v.GetString("EMAIL_PROVIDER")),
		PostmarkToken:    v.GetString("POSTMARK_API_TOKEN"),
		SendGridKey:      v.GetString("SENDGRID_API_KEY"),
		EmailSender:      v.GetString("EMAIL_SENDER"),
		AdminNotifyEmail: v.GetString("ADMIN_NOTIFY_EMAIL"),
		AdminEmail:       strings.ToLower(v.GetString("ADMIN_EMAIL")),
		AdminPassword:    v.GetString("ADMIN_PASSWORD"),
		KafkaBrokers:     splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:       v.GetString("KAFKA_TOPIC"),
		Store: StoreIdentity{
			Name:    v.GetString("STORE_NAME"),
			Email:   v.GetString("STORE_EMAIL"),
			Phone:   v.GetString("STORE_PHONE"),
			Address: v.GetString("STORE_ADDRESS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "storefront")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CART_TTL", "168h")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("TRACK_URL", "http://localhost:3000/track")
	v.SetDefault("EMAIL_PROVIDER", "none")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "order-events")
	v.SetDefault("STORE_NAME", "Bloome Storefront")
	v.SetDefault("STORE_EMAIL", "support@example.com")
	v.SetDefault("STORE_PHONE", "+92 300 0000000")
	v.SetDefault("STORE_ADDRESS", "Peshawar, Khyber Pakhtunkhwa, Pakistan")
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.EmailProvider {
	case "none", "":
	case "postmark":
		if c.PostmarkToken == "" {
			return fmt.Errorf("POSTMARK_API_TOKEN is required when EMAIL_PROVIDER=postmark")
		}
	case "sendgrid":
		if c.SendGridKey == "" {
			return fmt.Errorf("SENDGRID_API_KEY is required when EMAIL_PROVIDER=sendgrid")
		}
	default:
		return fmt.Errorf("unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}
	if c.CartTTL <= 0 {
		return fmt.Errorf("CART_TTL must be positive")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.LoginRatePerMin <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.TrimSuffix(p, "/"))
		}
	}
	return out
}
