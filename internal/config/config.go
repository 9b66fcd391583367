package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PostgresConfig struct {
	DSN             string
	MaxConns        int
	ConnMaxLifetime time.Duration
}

// StorageConfig names the backend and the three logical documents everything
// is persisted under.
type StorageConfig struct {
	Backend  string // "redis" or "postgres"
	UsersKey string
	PostsKey string
	ChatsKey string
}

type SecurityConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
}

type AppConfig struct {
	Environment string
	Redis       RedisConfig
	Postgres    PostgresConfig
	Storage     StorageConfig
	Security    SecurityConfig
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("ANONU")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("postgres.maxconns", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("storage.backend", "redis")
	v.SetDefault("storage.userskey", "anonu_users_v1")
	v.SetDefault("storage.postskey", "anonu_posts_v1")
	v.SetDefault("storage.chatskey", "anonu_chats_v1")

	v.SetDefault("security.sessionttl", "12h")
}
