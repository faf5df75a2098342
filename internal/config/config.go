// Package config maps viper settings onto a typed Config.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyClientID          = "naver.client_id"
	KeyClientSecret      = "naver.client_secret"
	KeyBaseURL           = "naver.base_url"
	KeyPageSize          = "naver.page_size"
	KeyRequestsPerSecond = "naver.requests_per_second"
	KeyTimeout           = "naver.timeout"
	KeyRateLimitCooldown = "naver.rate_limit_cooldown"
	KeyDebounceMillis    = "search.debounce_ms"
	KeyPrefetchPixels    = "search.prefetch_pixels"
)

const (
	DefaultBaseURL        = "https://openapi.naver.com/v1/search/movie.json"
	DefaultPageSize       = 10
	DefaultDebounceMillis = 300
	DefaultPrefetchPixels = 100
)

// Config is the runtime configuration.
type Config struct {
	Naver  NaverConfig
	Search SearchConfig
}

// NaverConfig holds the API credentials and transport settings.
type NaverConfig struct {
	ClientID          string
	ClientSecret      string
	BaseURL           string
	PageSize          int
	RequestsPerSecond int
	Timeout           time.Duration
	RateLimitCooldown time.Duration
}

// SearchConfig holds the interactive search settings.
type SearchConfig struct {
	Debounce       time.Duration
	PrefetchPixels int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyClientID, "")
	v.SetDefault(KeyClientSecret, "")
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyPageSize, DefaultPageSize)
	v.SetDefault(KeyRequestsPerSecond, 10)
	v.SetDefault(KeyTimeout, "10s")
	v.SetDefault(KeyRateLimitCooldown, "0s")
	v.SetDefault(KeyDebounceMillis, DefaultDebounceMillis)
	v.SetDefault(KeyPrefetchPixels, DefaultPrefetchPixels)
}

// BindEnv binds the environment variables that may carry credentials.
func BindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		KeyClientID:     "NAVER_CLIENT_ID",
		KeyClientSecret: "NAVER_CLIENT_SECRET",
		KeyBaseURL:      "NAVER_BASE_URL",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", env, key, err)
		}
	}
	return nil
}

// Load reads a Config from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Naver: NaverConfig{
			ClientID:          v.GetString(KeyClientID),
			ClientSecret:      v.GetString(KeyClientSecret),
			BaseURL:           v.GetString(KeyBaseURL),
			PageSize:          v.GetInt(KeyPageSize),
			RequestsPerSecond: v.GetInt(KeyRequestsPerSecond),
			Timeout:           v.GetDuration(KeyTimeout),
			RateLimitCooldown: v.GetDuration(KeyRateLimitCooldown),
		},
		Search: SearchConfig{
			Debounce:       time.Duration(v.GetInt(KeyDebounceMillis)) * time.Millisecond,
			PrefetchPixels: v.GetInt(KeyPrefetchPixels),
		},
	}
	if cfg.Naver.BaseURL == "" {
		cfg.Naver.BaseURL = DefaultBaseURL
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.Naver.PageSize <= 0:
		return fmt.Errorf("%s must be positive, got %d", KeyPageSize, c.Naver.PageSize)
	case c.Naver.RequestsPerSecond <= 0:
		return fmt.Errorf("%s must be positive, got %d", KeyRequestsPerSecond, c.Naver.RequestsPerSecond)
	case c.Naver.Timeout <= 0:
		return fmt.Errorf("%s must be positive, got %s", KeyTimeout, c.Naver.Timeout)
	case c.Naver.RateLimitCooldown < 0:
		return fmt.Errorf("%s must not be negative, got %s", KeyRateLimitCooldown, c.Naver.RateLimitCooldown)
	case c.Search.Debounce < 0:
		return fmt.Errorf("%s must not be negative, got %d", KeyDebounceMillis, c.Search.Debounce.Milliseconds())
	case c.Search.PrefetchPixels < 0:
		return fmt.Errorf("%s must not be negative, got %d", KeyPrefetchPixels, c.Search.PrefetchPixels)
	}
	return nil
}

// RequireCredentials fails unless both API keys are set.
func (c Config) RequireCredentials() error {
	if c.Naver.ClientID == "" {
		return fmt.Errorf("client ID is required (provide via --client-id flag, NAVER_CLIENT_ID or %s in config)", KeyClientID)
	}
	if c.Naver.ClientSecret == "" {
		return fmt.Errorf("client secret is required (provide via --client-secret flag, NAVER_CLIENT_SECRET or %s in config)", KeyClientSecret)
	}
	return nil
}
