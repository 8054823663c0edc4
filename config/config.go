package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var load sync.Once

// Config reads a key from the environment, loading .env once on first use.
func Config(key string) string {
	load.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("no .env file found, using process environment")
		}
	})

	return os.Getenv(key)
}
