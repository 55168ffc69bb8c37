package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Println("Warning: JWT_SECRET not set, tokens will not survive restarts")
		}
		ttlHours := 24 * 7
		if raw := os.Getenv("JWT_TTL_HOURS"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				ttlHours = parsed
			}
		}
		authConfig = &AuthConfig{
			JWTSecret: secret,
			TokenTTL:  time.Duration(ttlHours) * time.Hour,
		}
	})
	return authConfig
}
