package configs

import (
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. BOARD_DATABASE_HOST.
const EnvPrefix = "BOARD"

type Config struct {
	Viper *viper.Viper
}

var (
	config *Config
	once   sync.Once
)

// GetConfig loads ./configs/config.yaml once, plus .env and environment
// overrides.
func GetConfig() *Config {
	once.Do(func() {
		var err error
		config, err = Load(".env", "./configs", ".")
		if err != nil {
			log.Fatalf("Failed to load configs: %v", err)
		}
	})
	return config
}

// Load reads config.yaml from the first search path that has one. A
// missing env file or config file is not an error; defaults apply.
func Load(envFile string, paths ...string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Println("No config file found, using defaults and environment")
	}
	return &Config{Viper: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "socket_board")
	v.SetDefault("database.ssl", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.external_endpoint", "localhost:9000")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("presence.ttl", 30*time.Second)
	v.SetDefault("upload.max_bytes", 5<<20)
}
