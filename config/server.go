package config

import (
	"fmt"
	"os"
	"strconv"
)

type ServerConfig struct {
	Port           int
	WorkerPoolSize int
}

func GetServerConfig() (*ServerConfig, error) {
	port := 8080
	if raw := os.Getenv("PORT"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse PORT")
		}
		port = val
	}

	workerPoolSize := 120
	if raw := os.Getenv("WORKER_POOL_SIZE"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse WORKER_POOL_SIZE")
		}
		workerPoolSize = val
	}

	return &ServerConfig{
		Port:           port,
		WorkerPoolSize: workerPoolSize,
	}, nil
}
