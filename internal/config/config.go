package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	Concurrency    int
	Requests       int
	MaxMemoryMB    int64
	RunnerImages   map[string]string
}

func LoadConfig() Config {
	apiURL := os.Getenv("OPTIMUS_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:80"
	}

	timeout := 30 * time.Second
	if v := os.Getenv("OPTIMUS_REQUEST_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	return Config{
		APIURL:         apiURL,
		RequestTimeout: timeout,
		Concurrency:    20,
		Requests:       50,
		MaxMemoryMB:    256,
		RunnerImages: map[string]string{
			"python": "optimus-runner-python:latest",
			"java":   "optimus-runner-java:latest",
			"rust":   "optimus-runner-rust:latest",
		},
	}
}
