package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/staticbot/staticbot/internal/bus"
	"github.com/staticbot/staticbot/internal/config"
	"github.com/staticbot/staticbot/internal/group"
	"github.com/staticbot/staticbot/internal/membership"
	"github.com/staticbot/staticbot/internal/pins"
	"github.com/staticbot/staticbot/internal/platform/discord"
	"github.com/staticbot/staticbot/internal/policy"
	"github.com/staticbot/staticbot/internal/router"
	"github.com/staticbot/staticbot/internal/status"
)

var runConfigPath string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and serve commands",
	RunE:  runBot,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "Path to JSON config file")
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := discord.NewSession(cfg.Token)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	eventBus := bus.NewEventBus()
	gateway := discord.NewGateway(session, eventBus, slog.Default())
	gateway.Bind()

	if err := session.Open(); err != nil {
		return fmt.Errorf("connect gateway: %w", err)
	}
	defer session.Close()

	client, err := discord.NewClient(session, cfg.GuildID)
	if err != nil {
		return err
	}

	metrics := status.NewServer(eventBus.Size)
	resolver := policy.NewResolver(cfg)
	dispatcher := router.New(cfg, client, resolver,
		membership.NewEngine(client, resolver),
		group.NewManager(client, resolver, cfg.CategoryID),
		pins.NewNavigator(client),
		metrics)

	if cfg.StatusAddr != "" {
		srv := &http.Server{Addr: cfg.StatusAddr, Handler: metrics.Handler()}
		go func() {
			slog.Info("status server listening", "addr", cfg.StatusAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("status server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	slog.Info("staticbot running", "guild", cfg.GuildID, "category", cfg.CategoryID)

	// One goroutine per event, so a slow command never blocks the queue.
	var wg sync.WaitGroup
	for {
		ev, err := eventBus.Consume(ctx)
		if err != nil {
			break
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			dispatcher.Dispatch(ctx, ev)
		}()
	}

	slog.Info("shutting down")
	wg.Wait()
	return nil
}
