package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Config holds every runtime setting read from the environment.
type Config struct {
	Port        string
	DatabaseURL string

	AdminPassword string
	JWTSecret     string

	AllowedOrigins []string

	DeliveryFeeCents int

	// Stripe — leave secret key empty to run without checkout (endpoints return 503).
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeAPIURL        string
	StripeSuccessURL    string
	StripeCancelURL     string

	UploadsDir string
	ReviewDir  string
	LogDir     string

	RedisAddr   string
	KafkaBroker string
	KafkaTopic  string
}

func Load() Config {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		AdminPassword:       os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		DeliveryFeeCents:    getEnvInt("DELIVERY_FEE_CENTS", 500),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeAPIURL:        getEnv("STRIPE_API_URL", "https://api.stripe.com/v1"),
		StripeSuccessURL:    getEnv("STRIPE_SUCCESS_URL", "http://localhost:3000/order/success?session_id={CHECKOUT_SESSION_ID}"),
		StripeCancelURL:     getEnv("STRIPE_CANCEL_URL", "http://localhost:3000/order/cancel"),
		UploadsDir:          getEnv("UPLOADS_DIR", "./uploads"),
		ReviewDir:           getEnv("REVIEW_DIR", "./dry_run_outputs"),
		LogDir:              getEnv("LOG_DIR", "./logs"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		KafkaBroker:         os.Getenv("KAFKA_BROKER"),
		KafkaTopic:          getEnv("KAFKA_TOPIC", "order-events"),
	}

	raw := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	if raw == "" {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	} else {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg
}

// MustInitRedis connects to Redis or exits. Returns nil when no address is configured.
func (c Config) MustInitRedis() *redis.Client {
	if c.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	return client
}

// NewKafkaWriter builds the order-event writer. Returns nil when no broker is configured.
func (c Config) NewKafkaWriter() *kafka.Writer {
	if c.KafkaBroker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(c.KafkaBroker),
		Topic:    c.KafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
