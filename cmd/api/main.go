package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sketchwire/sketchwire/internal/config"
	"github.com/sketchwire/sketchwire/internal/game"
	"github.com/sketchwire/sketchwire/internal/server"
	"github.com/sketchwire/sketchwire/internal/store"
)

const releaseVersion = "0.1.0"

func main() {
	// .env first, so viper's AutomaticEnv sees its values. Missing file is
	// the normal case in production.
	if err := godotenv.Load(); err == nil {
		log.Printf("[main] loaded environment from .env")
	}

	cfg := config.Default()
	cobra.CheckErr(newCmd(cfg).Execute())
}

func newCmd(cfg *config.Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SKETCHWIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "sketchwire",
		Short:         "Authoritative realtime server for turn-based drawing and board rooms.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.Bind, "bind", "b", cfg.Bind, "address to bind to (env: SKETCHWIRE_BIND)")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on (env: SKETCHWIRE_PORT)")
	fs.IntVar(&cfg.MaxRooms, "max-rooms", cfg.MaxRooms, "maximum concurrent rooms (env: SKETCHWIRE_MAX_ROOMS)")
	fs.IntVar(&cfg.MaxPlayersPerRoom, "max-players", cfg.MaxPlayersPerRoom, "maximum players per room (env: SKETCHWIRE_MAX_PLAYERS)")
	fs.IntVar(&cfg.MinParticipants, "min-players", cfg.MinParticipants, "minimum players to start a session (env: SKETCHWIRE_MIN_PLAYERS)")
	fs.IntVar(&cfg.WordHistory, "word-history", cfg.WordHistory, "recent words excluded from selection (env: SKETCHWIRE_WORD_HISTORY)")
	fs.DurationVar(&cfg.ResolveDelay, "resolve-delay", cfg.ResolveDelay, "pause after a resolved round before the next turn (env: SKETCHWIRE_RESOLVE_DELAY)")
	fs.DurationVar(&cfg.RoomIdleTimeout, "room-idle-timeout", cfg.RoomIdleTimeout, "time before idle rooms are deleted (env: SKETCHWIRE_ROOM_IDLE_TIMEOUT)")
	fs.StringVar(&cfg.WordFile, "word-file", cfg.WordFile, "CSV file to load the word pool from (env: SKETCHWIRE_WORD_FILE)")
	fs.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "postgres connection string, optional (env: SKETCHWIRE_DATABASE_URL)")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "display additional output (env: SKETCHWIRE_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("sketchwire v{{.Version}}\n")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var results game.ResultSink
	var words []string

	if cfg.DatabaseURL != "" {
		pg, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			return err
		}
		stored, err := pg.LoadWords(ctx)
		if err != nil {
			return err
		}
		if len(stored) > 0 {
			words = stored
			log.Printf("[run] loaded %d words from database", len(stored))
		}
		results = pg
	}

	if words == nil && cfg.WordFile != "" {
		loaded, err := game.LoadWordsCSV(cfg.WordFile)
		if err != nil {
			return fmt.Errorf("word file: %w", err)
		}
		words = loaded
		log.Printf("[run] loaded %d words from %s", len(loaded), cfg.WordFile)
	}

	registry := game.NewRegistry(cfg.MaxRooms, cfg.MaxPlayersPerRoom)
	registry.StartReaper(ctx, time.Minute, cfg.RoomIdleTimeout)

	pool := game.NewWordPool(words, time.Now().UnixNano())
	coordinator := game.NewCoordinator(registry, pool, game.CoordinatorOptions{
		ResolveDelay:    cfg.ResolveDelay,
		WordHistory:     cfg.WordHistory,
		MinParticipants: cfg.MinParticipants,
		Results:         results,
	})
	handler := game.NewHandler(coordinator)

	srv := server.NewServer(cfg, handler, registry)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[run] listening on %s (word pool: %d)", cfg.Addr(), pool.Size())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[run] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
