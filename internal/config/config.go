package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultWeatherstackBaseURL = "http://api.weatherstack.com"
	defaultFrontendOrigin      = "http://localhost:3000"
	defaultPort                = 8000
)

// Config holds all the environment‐driven settings for the application.
type Config struct {
	// Weatherstack. The key may be empty; requests then fail with a
	// configuration error instead of the process refusing to start.
	WeatherstackAPIKey  string
	WeatherstackBaseURL string

	// HTTP
	Port           int
	FrontendOrigin string

	// Runtime
	Development bool
	ZipkinURL   string
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Load reads an optional .env file and then the environment, applying
// defaults where appropriate. It returns an error if a variable is malformed.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var err error

	apiKey := strings.TrimSpace(os.Getenv("WEATHERSTACK_API_KEY"))

	baseURL := os.Getenv("WEATHERSTACK_BASE_URL")
	if baseURL == "" {
		baseURL = defaultWeatherstackBaseURL
	}
	if err = validateURL(baseURL); err != nil {
		return nil, fmt.Errorf("invalid WEATHERSTACK_BASE_URL %q: %w", baseURL, err)
	}
	baseURL = strings.TrimRight(baseURL, "/")

	port := defaultPort
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q: out of range", portStr)
		}
	}

	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = defaultFrontendOrigin
	}
	if err = validateURL(origin); err != nil {
		return nil, fmt.Errorf("invalid FRONTEND_ORIGIN %q: %w", origin, err)
	}
	origin = strings.TrimRight(origin, "/")

	zipkinURL := os.Getenv("ZIPKIN_URL")
	if zipkinURL != "" {
		if err = validateURL(zipkinURL); err != nil {
			return nil, fmt.Errorf("invalid ZIPKIN_URL %q: %w", zipkinURL, err)
		}
	}

	return &Config{
		WeatherstackAPIKey:  apiKey,
		WeatherstackBaseURL: baseURL,

		Port:           port,
		FrontendOrigin: origin,

		Development: os.Getenv("APP_ENV") == "development",
		ZipkinURL:   zipkinURL,
	}, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
