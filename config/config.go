package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	DataDir    string
	UploadDir  string
	// Strict turns silently-tolerated data defects (malformed rows,
	// unparsable rate cells) into load errors.
	Strict    bool
	UploadTTL time.Duration
	TgToken   string
	TgChatID  int64
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration, loading .env once.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using environment only")
		}

		config = &Config{
			ListenAddr: getenv("LISTEN_ADDR", ":8005"),
			DataDir:    getenv("DATA_DIR", "data"),
			UploadDir:  getenv("UPLOAD_DIR", "uploads"),
			Strict:     getenvBool("STRICT_MODE"),
			UploadTTL:  time.Hour * 2,
			TgToken:    os.Getenv("TG_TOKEN"),
			TgChatID:   getenvInt64("TG_CHAT_ID"),
		}
		if ttl := os.Getenv("UPLOAD_TTL_MINUTES"); ttl != "" {
			if minutes, err := strconv.Atoi(ttl); err == nil && minutes > 0 {
				config.UploadTTL = time.Duration(minutes) * time.Minute
			}
		}
	})
	return config
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func getenvInt64(key string) int64 {
	v, _ := strconv.ParseInt(os.Getenv(key), 10, 64)
	return v
}
