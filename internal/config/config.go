package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultUserAgent = "Mozilla/5.0 (compatible; SEOBot/1.0)"

var (
	DefaultCompetitors = []string{
		"https://yashodahospitals.com",
		"https://apolloshospitals.com",
		"https://drraveesh.com",
		"https://ravisumanneuro.com",
		"https://practo.com",
	}

	DefaultKeywords = []string{
		"neurosurgeon",
		"spine",
		"surgery",
		"hyderabad",
		"endoscopic",
		"neuro",
		"surgeon",
	}
)

type Config struct {
	OutputPath     string
	Competitors    []string
	Keywords       []string
	UserAgent      string
	RequestTimeout time.Duration
	Concurrency    int

	DatabaseURL    string
	RedisURL       string
	PushgatewayURL string
	OpenAIKey      string
	OpenAIModel    string

	LogLevel string
}

func Load() *Config {
	// .env da raiz do projeto, depois o do diretório atual
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		OutputPath:     getEnv("SEO_OUTPUT_PATH", "seo/reports/competitors.json"),
		Competitors:    getList("SEO_COMPETITORS", DefaultCompetitors),
		Keywords:       getList("SEO_KEYWORDS", DefaultKeywords),
		UserAgent:      getEnv("SEO_USER_AGENT", DefaultUserAgent),
		RequestTimeout: getDuration("SEO_REQUEST_TIMEOUT", 30*time.Second),
		Concurrency:    getInt("SEO_CONCURRENCY", 0),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getInt(k string, d int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n < 0 {
		return d
	}
	return n
}

func getDuration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(k))
	if err != nil || v <= 0 {
		return d
	}
	return v
}

func getList(k string, d []string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(k), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), d...)
	}
	return out
}
