package config

import (
	"os"
	"sync"
)

type RedisConfig struct {
	URL string
}

var (
	redisConfig *RedisConfig
	redisOnce   sync.Once
)

func LoadRedisConfig() *RedisConfig {
	redisOnce.Do(func() {
		url := os.Getenv("REDIS_URL")
		if url == "" {
			url = "redis://localhost:6379/0"
		}
		redisConfig = &RedisConfig{URL: url}
	})
	return redisConfig
}
