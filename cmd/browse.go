package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lepinkainen/moviesearch/internal/humanlog"
	"github.com/lepinkainen/moviesearch/internal/reactor"
	"github.com/lepinkainen/moviesearch/internal/tui"
)

var runBrowser = tui.Run

// BrowseCmd represents the interactive search command
type BrowseCmd struct {
	Query   string `arg:"" optional:"" help:"Initial search text"`
	LogFile string `help:"Log file used while the UI owns the terminal (default: moviesearch.log in the temp dir)" type:"path"`
}

func (b *BrowseCmd) Run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := b.LogFile
	if path == "" {
		path = filepath.Join(os.TempDir(), "moviesearch.log")
	}
	logger, logFile, err := humanlog.OpenFile(path, logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	previous := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(previous)

	logger.Info("Browse session started", "log_file", path)
	defer logger.Info("Browse session ended")

	r := reactor.New(newClient(cfg, logger),
		reactor.WithLogger(logger),
		reactor.WithMutationTrace(traceMutations(logger)),
	)
	defer r.Close()

	return runBrowser(ctx, r, tui.Options{
		Debounce:       cfg.Search.Debounce,
		PrefetchPixels: cfg.Search.PrefetchPixels,
	}, b.Query)
}

// traceMutations writes every reduced mutation to the session log at debug level.
func traceMutations(logger *slog.Logger) func(reactor.Mutation, reactor.State) {
	return func(m reactor.Mutation, s reactor.State) {
		logger.Debug("Mutation applied",
			"mutation", m.String(),
			"query", s.QueryText(),
			"movies", len(s.Movies),
			"loading_next_page", s.IsLoadingNextPage,
		)
	}
}
