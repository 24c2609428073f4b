package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port                string
	CORSAllowOrigin     []string
	DatabaseURL         string
	Env                 string
	WorkDir             string
	GitHubClientID      string
	GitHubClientSecret  string
	GitHubRedirectURL   string
	UIRedirectURL       string
	FossaAPIKey         string
	FossaProjectLocator string
	SonarURL            string
	SonarToken          string
	SonarOrg            string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		CORSAllowOrigin:     splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:         dbURL,
		Env:                 env,
		WorkDir:             getEnv("WORK_DIR", os.TempDir()),
		GitHubClientID:      getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret:  getEnv("GITHUB_CLIENT_SECRET", ""),
		GitHubRedirectURL:   getEnv("GITHUB_REDIRECT_URL", ""),
		UIRedirectURL:       getEnv("UI_REDIRECT_URL", ""),
		FossaAPIKey:         getEnv("FOSSA_API_KEY", ""),
		FossaProjectLocator: getEnv("FOSSA_PROJECT_LOCATOR", ""),
		SonarURL:            getEnv("SONARQUBE_URL", "https://sonarcloud.io"),
		SonarToken:          getEnv("SONARQUBE_TOKEN", ""),
		SonarOrg:            getEnv("SONARQUBE_ORG", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}
