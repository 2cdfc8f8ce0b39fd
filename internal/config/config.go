package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDatabaseURL = "foodgram.db"
	defaultTokenTTL    = "24h"
	defaultUploadDir   = "./uploads/recipes"
	defaultStaticBase  = "/static/recipes"
)

// Limits bounds the integer fields of a recipe. The same pair applies to
// line-item amounts and to cooking time.
type Limits struct {
	MinAmount      int
	MaxAmount      int
	MinCookingTime int
	MaxCookingTime int
}

func DefaultLimits() Limits {
	return Limits{
		MinAmount:      1,
		MaxAmount:      32000,
		MinCookingTime: 1,
		MaxCookingTime: 32000,
	}
}

type Config struct {
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	UploadDir   string
	StaticBase  string
	Limits      Limits
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		UploadDir:   getEnv("UPLOAD_DIR", defaultUploadDir),
		StaticBase:  getEnv("STATIC_URL_BASE", defaultStaticBase),
		Limits:      DefaultLimits(),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", defaultTokenTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	cfg.Limits.MaxAmount, err = parseIntEnv("MAX_INGREDIENT_AMOUNT", cfg.Limits.MaxAmount)
	if err != nil {
		return nil, err
	}
	cfg.Limits.MaxCookingTime, err = parseIntEnv("MAX_COOKING_TIME", cfg.Limits.MaxCookingTime)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseIntEnv(name string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid %s value %q", name, raw)
	}
	return v, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
