package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type AuthConfig struct {
	SessionTTL          time.Duration
	RequireEmailConfirm bool
	ConfirmRedirectURL  string
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		ttl := 24 * time.Hour
		if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
			if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
				ttl = time.Duration(hours) * time.Hour
			}
		}
		requireConfirm, _ := strconv.ParseBool(os.Getenv("AUTH_REQUIRE_EMAIL_CONFIRM"))
		authConfig = &AuthConfig{
			SessionTTL:          ttl,
			RequireEmailConfirm: requireConfirm,
			ConfirmRedirectURL:  os.Getenv("AUTH_CONFIRM_REDIRECT_URL"),
		}
	})
	return authConfig
}
