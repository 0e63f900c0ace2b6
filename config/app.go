package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName           string
	Port              string
	Env               string
	Debug             bool
	LowStockThreshold int
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		threshold := 5
		if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				threshold = n
			}
		}
		AppConfig = &Config{
			AppName:           os.Getenv("APP_NAME"),
			Port:              os.Getenv("PORT"),
			Env:               os.Getenv("APP_ENV"),
			Debug:             os.Getenv("DEBUG") == "true",
			LowStockThreshold: threshold,
		}
	})
}
