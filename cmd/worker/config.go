package main

import (
	"log"

	"fishtrade-backend/internal/shared/utils"
)

// Config holds the worker's own configuration.
type Config struct {
	RedisAddr string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr: utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
	}

	log.Printf("[Config] Redis: %s", cfg.RedisAddr)
	return cfg
}
