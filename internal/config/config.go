package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort    string
	MongoURI    string
	MongoDBName string

	MongoConnectTimeout time.Duration
	MongoSelectTimeout  time.Duration
	MongoMaxPoolSize    int
	MongoMinPoolSize    int

	TaxRate            float64
	FlatShippingFee    float64
	ProductCacheTTL    time.Duration
	CategoryCacheTTL   time.Duration
	MaxQuantityPerItem int

	StoreTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() *Config {
	return &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "storefront"),

		MongoConnectTimeout: getEnvSeconds("MONGO_CONNECT_TIMEOUT", 10),
		MongoSelectTimeout:  getEnvSeconds("MONGO_SELECT_TIMEOUT", 5),
		MongoMaxPoolSize:    getEnvInt("MONGO_MAX_POOL_SIZE", 100),
		MongoMinPoolSize:    getEnvInt("MONGO_MIN_POOL_SIZE", 10),

		TaxRate:            getEnvFloat("TAX_RATE", 0.08),
		FlatShippingFee:    getEnvFloat("FLAT_SHIPPING_FEE", 5.99),
		ProductCacheTTL:    getEnvSeconds("PRODUCT_CACHE_TTL", 600),
		CategoryCacheTTL:   getEnvSeconds("CATEGORY_CACHE_TTL", 3600),
		MaxQuantityPerItem: getEnvInt("MAX_QUANTITY_PER_ITEM", 99),

		StoreTimeout:    getEnvSeconds("STORE_TIMEOUT", 5),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvInt(key, defaultValue)) * time.Second
}
