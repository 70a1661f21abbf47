package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// Token lifetimes: short-lived access, long-lived refresh.
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	// BcryptCost is the password hashing work factor. Changing it only
	// affects newly stored digests.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// ActivityWorkers sizes the async audit-trail worker pool.
	ActivityWorkers int `env:"ACTIVITY_WORKERS, default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=autovision"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
