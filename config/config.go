package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Store      StoreConfig
	JWT        JWTConfig
	Classifier ClassifierConfig
	Alerts     AlertConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
}

// StoreConfig holds the credentials for the GitHub-backed document store.
type StoreConfig struct {
	Token   string
	Owner   string
	Repo    string
	Branch  string
	BaseURL string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type ClassifierConfig struct {
	BaseURL        string
	Token          string
	EmotionModel   string
	SentimentModel string
}

type AlertConfig struct {
	Threshold float64
}

var AppConfig *Config

func Load() {
	AppConfig = &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		Store: StoreConfig{
			Token:   getEnv("GITHUB_TOKEN", ""),
			Owner:   getEnv("GITHUB_USERNAME", ""),
			Repo:    getEnv("GITHUB_REPO", ""),
			Branch:  getEnv("GITHUB_BRANCH", "main"),
			BaseURL: getEnv("GITHUB_API_URL", "https://api.github.com"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-this-in-production"),
			ExpiryHours: getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		},
		Classifier: ClassifierConfig{
			BaseURL:        getEnv("HF_API_URL", "https://api-inference.huggingface.co"),
			Token:          getEnv("HF_API_TOKEN", ""),
			EmotionModel:   getEnv("HF_EMOTION_MODEL", "bhadresh-savani/distilbert-base-uncased-emotion"),
			SentimentModel: getEnv("HF_SENTIMENT_MODEL", "distilbert-base-uncased-finetuned-sst-2-english"),
		},
		Alerts: AlertConfig{
			Threshold: getEnvAsFloat("ALERT_THRESHOLD", 0.7),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
