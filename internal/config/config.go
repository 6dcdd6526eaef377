package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	AppPort            string
	AppEnv             string
	DbDriver           string
	DbHost             string
	DbPort             string
	DbUser             string
	DbPassword         string
	DbName             string
	DbParams           string
	TrustedProxies     []string
	CORSAllowedOrigins []string
	TranslationFolder  string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	driver := strings.ToLower(getEnv("DB_DRIVER", "mysql"))

	return &Config{
		AppPort:            getEnv("APP_PORT", "8080"),
		AppEnv:             getEnv("APP_ENV", EnvProduction),
		DbDriver:           driver,
		DbHost:             getEnv("DB_HOST", "db"),
		DbPort:             getEnv("DB_PORT", defaultPort(driver)),
		DbUser:             getEnv("DB_USER", "tasktracker"),
		DbPassword:         getEnv("DB_PASSWORD", "tasktracker"),
		DbName:             getEnv("DB_NAME", "tasktracker"),
		DbParams:           getEnv("DB_PARAMS", ""),
		TrustedProxies:     parseList(os.Getenv("TRUSTED_PROXIES")),
		CORSAllowedOrigins: parseList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		TranslationFolder:  getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

func defaultPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil
	}

	return items
}
