package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/moviesearch/internal/config"
	"github.com/lepinkainen/moviesearch/internal/naver"
	"github.com/lepinkainen/moviesearch/internal/ratelimit"
)

// logLevel drives the browse log file. The console handler takes a snapshot
// of it in initLogging.
var logLevel = new(slog.LevelVar)

// CLI represents the complete command structure for the moviesearch application
type CLI struct {
	Config       string `help:"Path to config file (default: ./config.yaml, then the user config dir)" type:"path"`
	Debug        bool   `help:"Enable debug logging"`
	ClientID     string `help:"Naver API client ID (overrides NAVER_CLIENT_ID and config)"`
	ClientSecret string `help:"Naver API client secret (overrides NAVER_CLIENT_SECRET and config)"`

	Browse BrowseCmd `cmd:"" default:"withargs" help:"Search movies interactively"`
	Search SearchCmd `cmd:"" help:"Run one search and print the results"`
}

// Execute runs the Kong-based CLI
func Execute() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("moviesearch"),
		kong.Description("Search the Naver movie database from the terminal."),
		kong.UsageOnError(),
		kong.BindTo(runCtx, (*context.Context)(nil)),
	)

	initLogging(cli.Debug)
	if err := initConfig(cli.Config); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	applyFlags(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func initLogging(debug bool) {
	logLevel.Set(slog.LevelInfo)
	if debug {
		logLevel.Set(slog.LevelDebug)
	}

	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: logLevel.Level(),
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig(path string) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	config.SetDefaults(viper.GetViper())
	if err := config.BindEnv(viper.GetViper()); err != nil {
		return err
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(filepath.Join(dir, "moviesearch"))
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("Config file not found, using defaults and environment")
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	slog.Debug("Loaded config file", "path", viper.ConfigFileUsed())
	return nil
}

// loadDotEnv exports the variables in path unless they are already set.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	slog.Debug("Loaded environment file", "path", path)
	return nil
}

func applyFlags(cli *CLI) {
	if cli.ClientID != "" {
		viper.Set(config.KeyClientID, cli.ClientID)
	}
	if cli.ClientSecret != "" {
		viper.Set(config.KeyClientSecret, cli.ClientSecret)
	}
}

// loadConfig returns the validated configuration with credentials present.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.RequireCredentials(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newClient(cfg config.Config, logger *slog.Logger) *naver.Client {
	if cfg.Naver.PageSize != naver.PageSize {
		logger.Info("Ignoring configured page size; the API serves fixed pages",
			"page_size", cfg.Naver.PageSize, "served", naver.PageSize)
	}
	return naver.NewClient(
		naver.Credentials{ClientID: cfg.Naver.ClientID, ClientSecret: cfg.Naver.ClientSecret},
		naver.WithBaseURL(cfg.Naver.BaseURL),
		naver.WithTimeout(cfg.Naver.Timeout),
		naver.WithRateLimiter(ratelimit.New("Naver", cfg.Naver.RequestsPerSecond)),
		naver.WithRateLimitCooldown(cfg.Naver.RateLimitCooldown),
		naver.WithLogger(logger),
	)
}
