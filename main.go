package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/order-watch/apiclient"
	"github.com/danielhkuo/order-watch/cliparse"
	"github.com/danielhkuo/order-watch/models"
	"github.com/danielhkuo/order-watch/poller"
	"github.com/danielhkuo/order-watch/receipt"
	"github.com/danielhkuo/order-watch/session"
	"github.com/danielhkuo/order-watch/stickystore"
	"github.com/danielhkuo/order-watch/tracker"
)

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Open the durable state store
	store, err := stickystore.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("state store open failed", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Session: restores a remembered token, or takes the configured one
	sess := session.NewManager(store)
	if cfg.Token != "" {
		sess.SetToken(cfg.Token, cfg.RememberMe)
	}
	if sess.Token() == "" {
		slog.Error("no token available (use -token, API_TOKEN env, or a remembered session)")
		os.Exit(1)
	}
	sess.OnTeardown(func() {
		slog.Error("session rejected by the server, shutting down")
		cancel()
	})

	client := apiclient.New(cfg.APIBaseURL, cfg.TenantID, sess)
	tr := tracker.New(store, stickystore.StickyKey(cfg.TenantID))

	p := poller.New(client, tr, cfg.PollInterval)
	p.OnResult = printResult
	p.OnSurface = func(o models.Order) {
		fmt.Println(receipt.Format(o))
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
	}()

	slog.Info("Watching orders", "api", cfg.APIBaseURL, "tenant", cfg.TenantID, "interval", cfg.PollInterval)
	p.Run(ctx)
	slog.Info("Watcher stopped")
}

// printResult writes one line per order when a poll picked up changes.
// Quiet polls only log at debug level.
func printResult(res tracker.Result) {
	if len(res.ChangedIDs) == 0 {
		slog.Debug("poll clean", "orders", len(res.Orders))
		return
	}

	changed := make(map[string]bool, len(res.ChangedIDs))
	for _, id := range res.ChangedIDs {
		changed[id] = true
	}

	for _, o := range res.Orders {
		marker := "  "
		switch {
		case changed[o.ID]:
			marker = "!!"
		case o.Altered:
			marker = " *"
		}
		fmt.Printf("%s %-36s %-8s R$ %8.2f  %s  %s\n",
			marker, o.ID, o.Status, o.ComputedTotal(), o.CustomerName, humanize.Time(o.OrderedAt))
	}
}
